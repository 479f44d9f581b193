package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"candleshop-backend/config"
	"candleshop-backend/internal/domain"
	infracache "candleshop-backend/internal/infrastructure/cache"
	"candleshop-backend/internal/infrastructure/storage"
	"candleshop-backend/internal/repository/catalog"
	"candleshop-backend/internal/repository/snapshot"

	"github.com/shopspring/decimal"
)

// countingStorage wraps a SnapshotStorage and counts saves per key.
type countingStorage struct {
	domain.SnapshotStorage
	mu    sync.Mutex
	saves map[string]int
}

func newCountingStorage(inner domain.SnapshotStorage) *countingStorage {
	return &countingStorage{SnapshotStorage: inner, saves: map[string]int{}}
}

func (c *countingStorage) Save(ctx context.Context, key string, data []byte) error {
	c.mu.Lock()
	c.saves[key]++
	c.mu.Unlock()
	return c.SnapshotStorage.Save(ctx, key, data)
}

func (c *countingStorage) savesFor(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves[key]
}

// countingCatalog counts GetCategories calls.
type countingCatalog struct {
	domain.CatalogRepository
	categoryCalls atomic.Int32
}

func (c *countingCatalog) GetCategories(ctx context.Context) ([]domain.Category, error) {
	c.categoryCalls.Add(1)
	return c.CatalogRepository.GetCategories(ctx)
}

func testCatalog() *catalog.JSONRepository {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return catalog.NewJSONRepository([]domain.Product{
		{ID: "lav", Name: "Lavender Jar", Price: price("24.00"), Category: "Jar Candles", Stock: 10},
		{ID: "van", Name: "Vanilla Pillar", Price: price("15.50"), Category: "Pillar Candles", Stock: 2},
		{ID: "cedar", Name: "Cedar Tin", Price: price("9.99"), Category: "Travel Tins", Stock: 0},
		{ID: "rose", Name: "Rose Gift Set", Price: price("38.00"), Category: "Gift Sets", Stock: 100},
	})
}

func testConfig() *config.Config {
	return &config.Config{
		MaxCartQuantity:  1000,
		EnforceStock:     true,
		CacheCategoryTTL: time.Minute,
		SessionTTL:       time.Minute,
	}
}

type fixture struct {
	storage  *countingStorage
	sessions *SessionUsecase
	cart     *CartUsecase
	wishlist *WishlistUsecase
}

func newFixture(cfg *config.Config, store domain.SnapshotStorage) *fixture {
	counting := newCountingStorage(store)
	repo := testCatalog()
	sessions := NewSessionUsecase(
		snapshot.NewBridge(counting, time.Second),
		infracache.NewMemoryCache[*SessionStore](cfg.SessionTTL, 0, nil),
		cfg.SessionTTL,
	)
	return &fixture{
		storage:  counting,
		sessions: sessions,
		cart:     NewCartUsecase(sessions, repo, cfg),
		wishlist: NewWishlistUsecase(sessions, repo),
	}
}

func newTestFixture() *fixture {
	return newFixture(testConfig(), storage.NewMemoryStorage(0))
}
