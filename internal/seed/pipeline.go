package seed

import (
	"context"
	"sort"
	"strings"

	"catalog-api/internal/model"
	"catalog-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pipeline performs the one-time migration of legacy flat records into the
// normalised category/subcategory/product tables. It is a best-effort bulk
// import: a failed row is logged and counted, never fatal. Re-running against
// already-seeded storage creates nothing new for categories and subcategories
// and surfaces non-fatal uniqueness conflicts for products.
type Pipeline struct {
	categoryRepo    repository.CategoryRepository
	subcategoryRepo repository.SubcategoryRepository
	productRepo     repository.ProductRepository
	logger          zerolog.Logger
}

// NewPipeline creates a new seeding pipeline.
func NewPipeline(
	categoryRepo repository.CategoryRepository,
	subcategoryRepo repository.SubcategoryRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		categoryRepo:    categoryRepo,
		subcategoryRepo: subcategoryRepo,
		productRepo:     productRepo,
		logger:          logger.With().Str("component", "seed-pipeline").Logger(),
	}
}

// Summary reports what a pipeline run did.
type Summary struct {
	Categories    int // categories created
	Subcategories int // subcategories created
	Products      int // products created
	Skipped       int // products skipped because their category could not be resolved
	Failed        int // rows that failed to insert (duplicates included)
}

// fold is the single canonical case-fold used for all name matching in the
// pipeline. It must agree with the LOWER() comparison the repositories use.
func fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Run executes the three seeding phases in strict order: categories, then
// subcategories, then products. Each phase completes before the next starts
// and hands its name-to-id mapping forward, so later phases never re-query
// storage for ids created earlier. The only fatal error is context
// cancellation.
func (p *Pipeline) Run(ctx context.Context, records []model.LegacyProduct) (*Summary, error) {
	summary := &Summary{}

	categoryIDs, err := p.seedCategories(ctx, records, summary)
	if err != nil {
		return nil, err
	}

	subcategoryIDs, err := p.seedSubcategories(ctx, records, categoryIDs, summary)
	if err != nil {
		return nil, err
	}

	if err := p.seedProducts(ctx, records, categoryIDs, subcategoryIDs, summary); err != nil {
		return nil, err
	}

	p.logger.Info().
		Int("categories", summary.Categories).
		Int("subcategories", summary.Subcategories).
		Int("products", summary.Products).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("seeding completed")

	return summary, nil
}

// seedCategories creates one category per distinct category name, in
// lexicographic order, and returns the folded-name to id mapping.
func (p *Pipeline) seedCategories(ctx context.Context, records []model.LegacyProduct, summary *Summary) (map[string]string, error) {
	distinct := make(map[string]string) // folded name -> original name
	for _, record := range records {
		key := fold(record.Category)
		if key == "" {
			continue
		}
		if _, seen := distinct[key]; !seen {
			distinct[key] = strings.TrimSpace(record.Category)
		}
	}

	names := make([]string, 0, len(distinct))
	for _, name := range distinct {
		names = append(names, name)
	}
	sort.Strings(names)

	ids := make(map[string]string, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, created, err := p.ensureCategory(ctx, name)
		if err != nil {
			p.logger.Warn().Err(err).Str("category", name).Msg("failed to seed category")
			summary.Failed++
			continue
		}
		if created {
			summary.Categories++
		}
		ids[fold(name)] = id
	}

	return ids, nil
}

// ensureCategory returns the id of the category with the given name, creating
// it when absent. A concurrent duplicate insert loses the race on the unique
// index and falls back to the winning row.
func (p *Pipeline) ensureCategory(ctx context.Context, name string) (string, bool, error) {
	existing, err := p.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return "", false, err
	}
	if existing != nil {
		return existing.ID, false, nil
	}

	category := &model.Category{ID: uuid.NewString(), Name: name}
	err = p.categoryRepo.Create(ctx, category)
	if err == nil {
		return category.ID, true, nil
	}
	if !model.IsConflict(err) {
		return "", false, err
	}

	existing, lookupErr := p.categoryRepo.GetByName(ctx, name)
	if lookupErr != nil {
		return "", false, lookupErr
	}
	if existing == nil {
		return "", false, err
	}
	return existing.ID, false, nil
}

// seedSubcategories creates one subcategory per distinct subcategory name.
// A subcategory name appearing under two different categories in the source
// is a data-quality problem; the last record wins and the conflict is logged.
// A missing parent category yields a null category id rather than a dropped
// row.
func (p *Pipeline) seedSubcategories(ctx context.Context, records []model.LegacyProduct, categoryIDs map[string]string, summary *Summary) (map[string]string, error) {
	type pair struct {
		name        string
		categoryKey string
	}

	pairs := make(map[string]pair) // folded subcategory name -> pair
	for _, record := range records {
		key := fold(record.Subcategory)
		if key == "" {
			continue
		}
		categoryKey := fold(record.Category)
		if prev, seen := pairs[key]; seen && prev.categoryKey != categoryKey {
			p.logger.Warn().
				Str("subcategory", record.Subcategory).
				Str("previous_category", prev.categoryKey).
				Str("category", categoryKey).
				Msg("subcategory appears under multiple categories, last record wins")
		}
		pairs[key] = pair{name: strings.TrimSpace(record.Subcategory), categoryKey: categoryKey}
	}

	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	ids := make(map[string]string, len(keys))
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := pairs[key]

		existing, err := p.subcategoryRepo.GetByName(ctx, entry.name)
		if err != nil {
			p.logger.Warn().Err(err).Str("subcategory", entry.name).Msg("failed to look up subcategory")
			summary.Failed++
			continue
		}
		if existing != nil {
			ids[key] = existing.ID
			continue
		}

		subcategory := &model.Subcategory{ID: uuid.NewString(), Name: entry.name}
		if categoryID, ok := categoryIDs[entry.categoryKey]; ok {
			subcategory.CategoryID = &categoryID
		} else {
			p.logger.Warn().
				Str("subcategory", entry.name).
				Str("category", entry.categoryKey).
				Msg("parent category not resolved, creating subcategory without one")
		}

		if err := p.subcategoryRepo.Create(ctx, subcategory); err != nil {
			p.logger.Warn().Err(err).Str("subcategory", entry.name).Msg("failed to seed subcategory")
			summary.Failed++
			continue
		}
		summary.Subcategories++
		ids[key] = subcategory.ID
	}

	return ids, nil
}

// seedProducts creates one product per legacy record whose category resolves.
// Records without a resolvable category are skipped, which loses data but
// keeps the import available. Duplicate names on a re-run are counted as
// failed rows and do not stop the batch.
func (p *Pipeline) seedProducts(ctx context.Context, records []model.LegacyProduct, categoryIDs, subcategoryIDs map[string]string, summary *Summary) error {
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		categoryID, ok := categoryIDs[fold(record.Category)]
		if !ok {
			p.logger.Warn().
				Str("product", record.Name).
				Str("category", record.Category).
				Msg("category not resolved, skipping product")
			summary.Skipped++
			continue
		}

		product := &model.Product{
			ID:          record.ID.String(),
			Name:        record.Name,
			Description: record.Description,
			Price:       record.Price,
			Currency:    record.Currency,
			Stock:       record.Stock,
			Rating:      record.Rating,
			CategoryID:  &categoryID,
		}
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		if product.Currency == "" {
			product.Currency = model.DefaultCurrency
		}
		if subcategoryID, ok := subcategoryIDs[fold(record.Subcategory)]; ok {
			product.SubcategoryID = &subcategoryID
		}

		if err := p.productRepo.Create(ctx, product); err != nil {
			if model.IsConflict(err) {
				p.logger.Debug().Str("product", record.Name).Msg("product already exists")
			} else {
				p.logger.Warn().Err(err).Str("product", record.Name).Msg("failed to seed product")
			}
			summary.Failed++
			continue
		}
		summary.Products++
	}

	return nil
}
