package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"candleshop-backend/config"
	"candleshop-backend/internal/delivery/http/middleware"
	v1 "candleshop-backend/internal/delivery/http/v1"
	"candleshop-backend/internal/domain"
	"candleshop-backend/internal/infrastructure/cache"
	"candleshop-backend/internal/infrastructure/storage"
	"candleshop-backend/internal/repository/catalog"
	"candleshop-backend/internal/repository/snapshot"
	"candleshop-backend/internal/usecase"
	"candleshop-backend/pkg/logger"
	"candleshop-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

const (
	serviceName    = "candleshop-backend"
	serviceVersion = "1.0.0"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Catalog (read-only seed)
	catalogRepo, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("Failed to load catalog")
	}
	log.Info().Int("products", catalogRepo.Len()).Msg("Catalog loaded")

	// Snapshot storage
	snapshotStorage, closeStorage, err := storage.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("Failed to open snapshot storage")
	}
	defer closeStorage()
	log.Info().Str("driver", cfg.StorageDriver).Msg("Snapshot storage ready")

	bridge := snapshot.NewBridge(snapshotStorage, cfg.StorageTimeout)

	// Initialize Cache (In-Memory)
	// Live sessions expire after SESSION_TTL idle; categories after CACHE_CATEGORY_TTL
	sessionCache := cache.NewMemoryCache(cfg.SessionTTL, time.Minute, func(sessionID string, _ *usecase.SessionStore) {
		log.Debug().Str("session_id", sessionID).Msg("Session evicted")
	})
	categoryCache := cache.NewMemoryCache[[]domain.Category](cfg.CacheCategoryTTL, 10*time.Minute, nil)

	// --- Modules Initialization ---
	sessionUC := usecase.NewSessionUsecase(bridge, sessionCache, cfg.SessionTTL)
	catalogUC := usecase.NewCatalogUsecase(catalogRepo, categoryCache, cfg)
	cartUC := usecase.NewCartUsecase(sessionUC, catalogRepo, cfg)
	wishlistUC := usecase.NewWishlistUsecase(sessionUC, catalogRepo)

	secureCookie := cfg.Env == "production"
	tokens := utils.NewSessionTokens(cfg.SessionSecret, cfg.SessionTokenTTL)

	router := v1.NewRouter(v1.Handlers{
		Catalog:  v1.NewCatalogHandler(catalogUC),
		Cart:     v1.NewCartHandler(cartUC),
		Wishlist: v1.NewWishlistHandler(wishlistUC),
		Session:  v1.NewSessionHandler(sessionUC, secureCookie),
		Health:   v1.NewHealthHandler(sessionUC, cfg.StorageDriver),
	}, middleware.NewSessionMiddleware(tokens, secureCookie))

	// Initialize Rate Limiter with lifecycle management
	// cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, Gzip and Real IP
	handler := middleware.NewCORSMiddleware(cfg)(router)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)
	handler = middleware.NewRealIPMiddleware(cfg.TrustProxy)(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, serviceVersion, cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
