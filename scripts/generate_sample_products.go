package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"catalog-api/internal/model"
)

// generateSampleProducts creates a sample legacy flat catalogue file for
// local seeding. The records deliberately include a repeated category, a
// repeated subcategory and one record without a category so a seeding run
// exercises the dedup and skip paths.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	catalog := model.LegacyCatalog{
		Products: []model.LegacyProduct{
			{ID: "1", Name: "Wireless Mouse", Description: "Ergonomic wireless mouse", Category: "Electronics", Subcategory: "Accessories", Price: 24.99, Currency: "USD", Stock: 120, Rating: 4.3},
			{ID: "2", Name: "Mechanical Keyboard", Description: "Tenkeyless mechanical keyboard", Category: "Electronics", Subcategory: "Accessories", Price: 89.99, Currency: "USD", Stock: 45, Rating: 4.7},
			{ID: "3", Name: "Claw Hammer", Description: "16oz claw hammer", Category: "Tools", Subcategory: "Hand Tools", Price: 12.50, Currency: "USD", Stock: 200, Rating: 4.1},
			{ID: "4", Name: "Cordless Drill", Description: "18V cordless drill", Category: "Tools", Subcategory: "Power Tools", Price: 79.00, Currency: "USD", Stock: 30, Rating: 4.6},
			{ID: "5", Name: "Mystery Gadget", Description: "Record without a category", Price: 5.00, Currency: "USD", Stock: 1, Rating: 1.0},
		},
	}

	path := filepath.Join(dataDir, "products.json")
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(catalog); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}

	fmt.Printf("Created %s with %d products\n", path, len(catalog.Products))
	fmt.Println("Seeding this file yields 2 categories, 3 subcategories and 4 products (one record is skipped).")
}
