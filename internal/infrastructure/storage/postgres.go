package storage

import (
	"context"
	"errors"
	"fmt"

	"candleshop-backend/config"
	"candleshop-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the subset of pgx the postgres store needs. Both *pgxpool.Pool
// and pgxmock pools satisfy it.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const (
	createSnapshotTable = `
		CREATE TABLE IF NOT EXISTS session_snapshots (
			key        TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	selectSnapshot = `SELECT data FROM session_snapshots WHERE key = $1`
	upsertSnapshot = `
		INSERT INTO session_snapshots (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	deleteSnapshot = `DELETE FROM session_snapshots WHERE key = $1`
)

type PostgresStorage struct {
	db            DBPool
	maxEntryBytes int64
}

func NewPostgresStorage(db DBPool, maxEntryBytes int64) *PostgresStorage {
	return &PostgresStorage{db: db, maxEntryBytes: maxEntryBytes}
}

// EnsureSchema creates the snapshot table when it is missing.
func (s *PostgresStorage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createSnapshotTable); err != nil {
		return fmt.Errorf("create session_snapshots: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := s.db.QueryRow(ctx, selectSnapshot, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return data, nil
}

func (s *PostgresStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := checkEntrySize(data, s.maxEntryBytes); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, upsertSnapshot, key, data); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, deleteSnapshot, key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}
