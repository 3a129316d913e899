package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Server
	ApiPort string

	// Listing seed
	SeedFile string // Optional JSON file; built-in seed used when empty

	// Simulated upstream latency per facade operation. The in-process
	// backend mimics network I/O; tests zero these out.
	GetAllDelay     time.Duration
	SearchDelay     time.Duration
	GetByIDDelay    time.Duration
	FeaturedDelay   time.Duration
	TextSearchDelay time.Duration
	RecommendDelay  time.Duration

	// Background tasks
	ViewsSnapshotInterval time.Duration

	// App Defaults
	AppName        string
	PasswordRegexp string

	// Rate Limiting Defaults
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	// Helper to parse a millisecond duration env var
	getMillisEnv := func(key string, defaultMs int64) (time.Duration, error) {
		ms, parseErr := strconv.ParseInt(getEnv(key, strconv.FormatInt(defaultMs, 10)), 10, 64)
		if parseErr != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, parseErr)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}

	// Load basic string values
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.SeedFile = getEnv("SEED_FILE", "")
	cfg.AppName = getEnv("APP_NAME", "RealState")
	cfg.PasswordRegexp = getEnv("PASSWORD_REGEXP", "^.{8,}$")

	// Load numeric and time duration values with defaults and parsing
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	// Simulated latencies mirror the upstream the UI was built against:
	// 300ms list/detail, 400ms featured/text search, 500ms filtered search,
	// 600ms recommendations.
	if cfg.GetAllDelay, err = getMillisEnv("GET_ALL_DELAY_MS", 300); err != nil {
		return nil, err
	}
	if cfg.SearchDelay, err = getMillisEnv("SEARCH_DELAY_MS", 500); err != nil {
		return nil, err
	}
	if cfg.GetByIDDelay, err = getMillisEnv("GET_BY_ID_DELAY_MS", 300); err != nil {
		return nil, err
	}
	if cfg.FeaturedDelay, err = getMillisEnv("FEATURED_DELAY_MS", 400); err != nil {
		return nil, err
	}
	if cfg.TextSearchDelay, err = getMillisEnv("TEXT_SEARCH_DELAY_MS", 400); err != nil {
		return nil, err
	}
	if cfg.RecommendDelay, err = getMillisEnv("RECOMMEND_DELAY_MS", 600); err != nil {
		return nil, err
	}

	snapshotIntervalSeconds, err := strconv.ParseInt(getEnv("VIEWS_SNAPSHOT_INTERVAL_SECONDS", "300"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid VIEWS_SNAPSHOT_INTERVAL_SECONDS: %w", err)
	}
	cfg.ViewsSnapshotInterval = time.Duration(snapshotIntervalSeconds) * time.Second

	// Rate Limiting
	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
