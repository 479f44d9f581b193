//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"candleshop-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PostgresStorageSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pool        *pgxpool.Pool
	storage     *PostgresStorage
}

func (s *PostgresStorageSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("candleshop"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err)

	s.pool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err)
	require.Eventually(s.T(), func() bool { return s.pool.Ping(s.ctx) == nil }, 30*time.Second, time.Second)

	s.storage = NewPostgresStorage(s.pool, 0)
	require.NoError(s.T(), s.storage.EnsureSchema(s.ctx))
}

func (s *PostgresStorageSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		require.NoError(s.T(), testcontainers.TerminateContainer(s.pgContainer))
	}
}

func (s *PostgresStorageSuite) TestSaveOverwriteLoadDelete() {
	key := "it-session:cart"

	_, err := s.storage.Load(s.ctx, key)
	s.Require().ErrorIs(err, domain.ErrSnapshotNotFound)

	s.Require().NoError(s.storage.Save(s.ctx, key, []byte(`{"version":1,"items":[]}`)))
	s.Require().NoError(s.storage.Save(s.ctx, key, []byte(`{"version":1,"items":[],"total":"0"}`)))

	data, err := s.storage.Load(s.ctx, key)
	s.Require().NoError(err)
	s.JSONEq(`{"version":1,"items":[],"total":"0"}`, string(data))

	s.Require().NoError(s.storage.Delete(s.ctx, key))
	_, err = s.storage.Load(s.ctx, key)
	s.ErrorIs(err, domain.ErrSnapshotNotFound)
}

func (s *PostgresStorageSuite) TestEnsureSchemaIsRepeatable() {
	s.NoError(s.storage.EnsureSchema(s.ctx))
}

func TestPostgresStorageSuite(t *testing.T) {
	suite.Run(t, new(PostgresStorageSuite))
}
