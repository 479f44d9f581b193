package storage

import (
	"context"
	"fmt"

	"candleshop-backend/config"
	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/logger"
)

// Open builds the backend named by cfg.StorageDriver. The returned close
// function releases any connection the backend holds.
func Open(ctx context.Context, cfg *config.Config) (domain.SnapshotStorage, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case domain.StorageDriverMemory:
		return NewMemoryStorage(cfg.StorageQuotaBytes), noop, nil

	case domain.StorageDriverFile:
		fs, err := NewFileStorage(cfg.StorageDir, cfg.StorageQuotaBytes)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil

	case domain.StorageDriverPostgres:
		pool, err := NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		pg := NewPostgresStorage(pool, cfg.StorageQuotaBytes)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return pg, pool.Close, nil

	case domain.StorageDriverS3:
		client, err := NewR2Client(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret)
		if err != nil {
			return nil, noop, fmt.Errorf("init R2 client: %w", err)
		}
		return NewR2Storage(client, cfg.R2BucketName, cfg.R2Prefix, cfg.StorageQuotaBytes), noop, nil

	case domain.StorageDriverMongo:
		client, err := NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("Mongo disconnect failed")
			}
		}
		return NewMongoStorage(coll, cfg.StorageQuotaBytes), closeFn, nil
	}

	return nil, noop, fmt.Errorf("unknown storage driver %q, want one of %v", cfg.StorageDriver, domain.StorageDrivers)
}
