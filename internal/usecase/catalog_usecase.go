package usecase

import (
	"context"
	"math"

	"candleshop-backend/config"
	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/cache"
)

const categoriesCacheKey = "category:all"

type CatalogUsecase struct {
	repo  domain.CatalogRepository
	cache cache.CacheService[[]domain.Category]
	cfg   *config.Config
}

func NewCatalogUsecase(repo domain.CatalogRepository, cache cache.CacheService[[]domain.Category], cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

// ListProducts returns one page of matching products. page is 1-based.
func (u *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter, page, limit int) ([]domain.Product, domain.Pagination, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	// Keep (page-1)*limit within int range.
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	products, count, err := u.repo.GetProducts(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	pagination := domain.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: count,
		TotalPages: int((count + int64(limit) - 1) / int64(limit)),
	}
	return products, pagination, nil
}

func (u *CatalogUsecase) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return u.repo.GetProductByID(ctx, id)
}

func (u *CatalogUsecase) GetCategories(ctx context.Context) ([]domain.Category, error) {
	if val, found := u.cache.Get(categoriesCacheKey); found {
		return val, nil
	}

	categories, err := u.repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(categoriesCacheKey, categories, u.cfg.CacheCategoryTTL)
	return categories, nil
}
