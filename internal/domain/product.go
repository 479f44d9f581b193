package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Product is an immutable catalog record. Cart and wishlist entries hold
// copies taken with Snapshot, never references into the catalog.
type Product struct {
	ID            string              `json:"id" validate:"required,max=64"`
	Name          string              `json:"name" validate:"required,max=200"`
	Description   string              `json:"description"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	Category      string              `json:"category"`
	CategorySlug  string              `json:"categorySlug"`
	Stock         int                 `json:"stock" validate:"min=0"`
	StockStatus   string              `json:"stockStatus"`
	Features      []string            `json:"features"`
}

// Snapshot returns a deep copy of p.
func (p Product) Snapshot() Product {
	cp := p
	if p.Features != nil {
		cp.Features = make([]string, len(p.Features))
		copy(cp.Features, p.Features)
	}
	return cp
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// HasDiscount reports whether an original price above the current price is set.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice.Valid && p.OriginalPrice.Decimal.GreaterThan(p.Price)
}

// Equal compares two products by value, treating decimals numerically.
func (p Product) Equal(o Product) bool {
	if p.ID != o.ID || p.Name != o.Name || p.Description != o.Description ||
		p.Category != o.Category || p.CategorySlug != o.CategorySlug ||
		p.Stock != o.Stock || p.StockStatus != o.StockStatus {
		return false
	}
	if !p.Price.Equal(o.Price) {
		return false
	}
	if p.OriginalPrice.Valid != o.OriginalPrice.Valid ||
		(p.OriginalPrice.Valid && !p.OriginalPrice.Decimal.Equal(o.OriginalPrice.Decimal)) {
		return false
	}
	if len(p.Features) != len(o.Features) {
		return false
	}
	for i := range p.Features {
		if p.Features[i] != o.Features[i] {
			return false
		}
	}
	return true
}

var productValidator = validator.New()

var (
	slugInvalidChars = regexp.MustCompile("[^a-z0-9 -]+")
	slugDashes       = regexp.MustCompile("-+")
)

// NormalizeProduct is the single place where optional catalog fields get
// their defaults. Everything downstream assumes a normalized product.
func NormalizeProduct(p Product) (Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)

	if err := productValidator.Struct(p); err != nil {
		return Product{}, fmt.Errorf("%w: %s: %v", ErrInvalidProduct, p.ID, err)
	}
	if p.Price.IsNegative() {
		return Product{}, fmt.Errorf("%w: %s: price must not be negative", ErrInvalidProduct, p.ID)
	}

	// Discount display only makes sense above the selling price.
	if p.OriginalPrice.Valid && !p.OriginalPrice.Decimal.GreaterThan(p.Price) {
		p.OriginalPrice = decimal.NullDecimal{}
	}

	if p.Category == "" {
		p.Category = DefaultCategory
	}
	p.CategorySlug = Slugify(p.Category)

	features := make([]string, 0, len(p.Features))
	for _, f := range p.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	p.Features = features

	if p.Stock > 0 {
		p.StockStatus = StockStatusInStock
	} else {
		p.StockStatus = StockStatusOutOfStock
	}

	return p, nil
}

// Slugify converts a label into a URL-friendly key.
// e.g. "Scented Candles & Gifts" -> "scented-candles-gifts"
func Slugify(input string) string {
	s := strings.ToLower(input)
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// --- Catalog ---

type Category struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"productCount"`
}

type ProductFilter struct {
	CategorySlug string
	Query        string
	MinPrice     decimal.NullDecimal
	MaxPrice     decimal.NullDecimal
	InStockOnly  bool
	Limit        int
	Offset       int
}

// Matches reports whether p passes every criterion of the filter (pagination aside).
func (f ProductFilter) Matches(p Product) bool {
	if f.CategorySlug != "" && p.CategorySlug != f.CategorySlug {
		return false
	}
	if f.InStockOnly && !p.InStock() {
		return false
	}
	if f.MinPrice.Valid && p.Price.LessThan(f.MinPrice.Decimal) {
		return false
	}
	if f.MaxPrice.Valid && p.Price.GreaterThan(f.MaxPrice.Decimal) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// CatalogRepository is the read-only product source consumed by the cart core.
type CatalogRepository interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetCategories(ctx context.Context) ([]Category, error)
}
