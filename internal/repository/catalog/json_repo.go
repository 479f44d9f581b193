// Package catalog serves the read-only product catalog from a JSON seed.
package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"

	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/logger"

	"github.com/goccy/go-json"
)

type JSONRepository struct {
	products []domain.Product
	byID     map[string]int
}

// LoadFile reads and normalizes the catalog seed at path.
func LoadFile(path string) (*JSONRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a JSON array of product records.
func Parse(raw []byte) (*JSONRepository, error) {
	var records []domain.Product
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewJSONRepository(records), nil
}

// NewJSONRepository normalizes records in order. Invalid records and repeated
// ids are logged and skipped; the first record for an id wins.
func NewJSONRepository(records []domain.Product) *JSONRepository {
	r := &JSONRepository{
		products: make([]domain.Product, 0, len(records)),
		byID:     make(map[string]int, len(records)),
	}
	for i, rec := range records {
		p, err := domain.NormalizeProduct(rec)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("Skipping catalog record")
			continue
		}
		if _, dup := r.byID[p.ID]; dup {
			logger.Warn().Str("product_id", p.ID).Int("index", i).Msg("Skipping duplicate catalog id")
			continue
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	return r
}

func (r *JSONRepository) Len() int {
	return len(r.products)
}

func (r *JSONRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Product, 0)
	for _, p := range r.products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	total := int64(len(matched))

	start := min(max(filter.Offset, 0), len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}

	page := make([]domain.Product, 0, end-start)
	for _, p := range matched[start:end] {
		page = append(page, p.Snapshot())
	}
	return page, total, nil
}

func (r *JSONRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	p := r.products[i].Snapshot()
	return &p, nil
}

// GetCategories lists every category label with its product count, by name.
func (r *JSONRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bySlug := make(map[string]*domain.Category)
	for _, p := range r.products {
		c, ok := bySlug[p.CategorySlug]
		if !ok {
			c = &domain.Category{Name: p.Category, Slug: p.CategorySlug}
			bySlug[p.CategorySlug] = c
		}
		c.ProductCount++
	}

	categories := make([]domain.Category, 0, len(bySlug))
	for _, c := range bySlug {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}
