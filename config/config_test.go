package config

import (
	"os"
	"testing"
	"time"

	"candleshop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "STORAGE_DRIVER", "MAX_CART_QUANTITY", "ENFORCE_STOCK", "STORAGE_TIMEOUT", "SESSION_SECRET", "TRUST_PROXY")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 1000, cfg.MaxCartQuantity)
	assert.True(t, cfg.EnforceStock)
	assert.Equal(t, 3*time.Second, cfg.StorageTimeout)
	assert.False(t, cfg.TrustProxy)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_ParsesTypedValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("DB_DSN", "postgres://localhost/candles")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("ENFORCE_STOCK", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("TRUST_PROXY", "true")

	cfg := FromEnv()

	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, int32(7), cfg.DBMaxConns)
	assert.False(t, cfg.EnforceStock)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
	assert.True(t, cfg.TrustProxy)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_CART_QUANTITY", "lots")
	t.Setenv("DB_MIN_CONNS", "99999999999")
	t.Setenv("STORAGE_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, 1000, cfg.MaxCartQuantity)
	assert.Equal(t, int32(10), cfg.DBMinConns)
	assert.Equal(t, 3*time.Second, cfg.StorageTimeout)
}

func TestValidate_DriverRequirements(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "postgres without dsn", mutate: func(c *Config) { c.StorageDriver = "postgres"; c.DBUrl = "" }, wantErr: "DB_DSN"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.StorageDriver = "s3" }, wantErr: "R2_BUCKET_NAME"},
		{name: "mongo without uri", mutate: func(c *Config) { c.StorageDriver = "mongo"; c.MongoURI = "" }, wantErr: "MONGO_URI"},
		{name: "file without dir", mutate: func(c *Config) { c.StorageDriver = "file"; c.StorageDir = "" }, wantErr: "STORAGE_DIR"},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "redis" }, wantErr: "unknown STORAGE_DRIVER"},
		{name: "non-positive limit", mutate: func(c *Config) { c.MaxCartQuantity = 0 }, wantErr: "MAX_CART_QUANTITY"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				StorageDriver:   "memory",
				StorageDir:      "data",
				SessionSecret:   "secret",
				MaxCartQuantity: 10,
			}
			tc.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_AcceptsEveryStorageDriver(t *testing.T) {
	for _, driver := range domain.StorageDrivers {
		t.Run(driver, func(t *testing.T) {
			// given a config with every driver setting filled in
			cfg := &Config{
				StorageDriver:     driver,
				StorageDir:        "data",
				DBUrl:             "postgres://localhost/candles",
				R2AccountID:       "acct",
				R2AccessKeyID:     "key",
				R2AccessKeySecret: "secret",
				R2BucketName:      "bucket",
				MongoURI:          "mongodb://localhost",
				SessionSecret:     "secret",
				MaxCartQuantity:   10,
			}

			// then the driver is known to the validator
			assert.NoError(t, cfg.Validate())
		})
	}
}
