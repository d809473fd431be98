package model

import "encoding/json"

// LegacyProduct is one denormalised record from the pre-migration flat JSON
// file. Category and subcategory are plain strings; the seeding pipeline
// resolves them into foreign keys. The file is read-only input and is never
// written back after migration.
type LegacyProduct struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	Stock       int         `json:"stock"`
	Rating      float64     `json:"rating"`
}

// LegacyCatalog is the top-level shape of the flat file.
type LegacyCatalog struct {
	Products []LegacyProduct `json:"products"`
}
