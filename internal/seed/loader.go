package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"catalog-api/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading the legacy JSON file from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based legacy catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a legacy catalogue file and returns its product records.
// The file carries a single {"products": [...]} object.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.LegacyProduct, error) {
	l.logger.Info().Str("file", path).Msg("loading legacy catalogue file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open legacy catalogue file")
		return nil, fmt.Errorf("failed to open legacy catalogue file %s: %w", path, err)
	}
	defer file.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var catalog model.LegacyCatalog
	decoder := json.NewDecoder(file)
	decoder.UseNumber()
	if err := decoder.Decode(&catalog); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode legacy catalogue file")
		return nil, fmt.Errorf("failed to decode legacy catalogue file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(catalog.Products)).
		Msg("legacy catalogue file loaded successfully")

	return catalog.Products, nil
}
