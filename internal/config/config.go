package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	JWTSecret        string
	TokenTTLHours    int
	CatalogSeed      int64
	MockTestCount    int
	StatsWorkerCount int
	StatsQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:examace.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		JWTSecret:        envOr("JWT_SECRET", "examace-dev-secret"),
		TokenTTLHours:    envIntOr("TOKEN_TTL_HOURS", 720),
		CatalogSeed:      envInt64Or("CATALOG_SEED", 1),
		// 0 keeps the per-exam mock counts; set to force a uniform count.
		MockTestCount:    envIntOr("MOCK_TEST_COUNT", 0),
		StatsWorkerCount: envIntOr("STATS_WORKER_COUNT", 2),
		StatsQueueSize:   envIntOr("STATS_QUEUE_SIZE", 64),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envInt64Or(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
