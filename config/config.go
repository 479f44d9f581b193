package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"candleshop-backend/internal/domain"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "default_secret_CHANGE_ME"

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	// Sessions
	SessionSecret   string
	SessionTokenTTL time.Duration
	SessionTTL      time.Duration
	// Catalog
	CatalogFile      string
	CacheCategoryTTL time.Duration
	// Business Rules
	MaxCartQuantity int
	EnforceStock    bool
	// Snapshot storage
	StorageDriver     string
	StorageTimeout    time.Duration
	StorageDir        string
	StorageQuotaBytes int64
	// DB Config
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2Prefix          string
	// Mongo
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
	// TrustProxy honours X-Forwarded-For and X-Real-IP. Enable only behind a
	// reverse proxy that overwrites them.
	TrustProxy bool
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	if cfg.SessionSecret == defaultSessionSecret {
		log.Println("WARNING: Using default session secret. Setting up for failure in production.")
	}
	return cfg
}

// FromEnv reads the configuration from the process environment without
// loading any dotenv file.
func FromEnv() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		SessionSecret:   getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionTokenTTL: getDurationEnv("SESSION_TOKEN_TTL", 30*24*time.Hour),
		SessionTTL:      getDurationEnv("SESSION_TTL", 30*time.Minute),

		CatalogFile:      getEnv("CATALOG_FILE", "data/catalog.json"),
		CacheCategoryTTL: getDurationEnv("CACHE_CATEGORY_TTL", 30*time.Minute),

		// Business rules: 1000 max cart quantity
		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 1000),
		EnforceStock:    getBoolEnv("ENFORCE_STOCK", true),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", domain.StorageDriverMemory)),
		StorageTimeout:    getDurationEnv("STORAGE_TIMEOUT", 3*time.Second),
		StorageDir:        getEnv("STORAGE_DIR", "data/sessions"),
		StorageQuotaBytes: getInt64Env("STORAGE_QUOTA_BYTES", 5*1024*1024),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2Prefix:          getEnv("R2_PREFIX", "sessions/"),

		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "candleshop"),
		MongoCollection: getEnv("MONGO_COLLECTION", "session_snapshots"),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 40),
		TrustProxy:     getBoolEnv("TRUST_PROXY", false),
	}
}

// Validate checks the settings each storage driver needs.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxCartQuantity < 1 {
		errs = append(errs, fmt.Errorf("MAX_CART_QUANTITY must be positive, got %d", c.MaxCartQuantity))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}

	switch c.StorageDriver {
	case domain.StorageDriverMemory:
	case domain.StorageDriverFile:
		if c.StorageDir == "" {
			errs = append(errs, errors.New("STORAGE_DIR is required for the file driver"))
		}
	case domain.StorageDriverPostgres:
		if c.DBUrl == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres driver"))
		}
	case domain.StorageDriverS3:
		if c.R2AccountID == "" || c.R2AccessKeyID == "" || c.R2AccessKeySecret == "" || c.R2BucketName == "" {
			errs = append(errs, errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_ACCESS_KEY_SECRET and R2_BUCKET_NAME are required for the s3 driver"))
		}
	case domain.StorageDriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
