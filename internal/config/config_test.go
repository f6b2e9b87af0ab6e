package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examace/examace/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "DB_PATH", "LOG_LEVEL", "JWT_SECRET", "TOKEN_TTL_HOURS",
		"CATALOG_SEED", "MOCK_TEST_COUNT", "STATS_WORKER_COUNT", "STATS_QUEUE_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:examace.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 720, cfg.TokenTTLHours)
	assert.Equal(t, int64(1), cfg.CatalogSeed)
	assert.Equal(t, 0, cfg.MockTestCount, "zero keeps the per-exam mock counts")
	assert.Equal(t, 2, cfg.StatsWorkerCount)
	assert.Equal(t, 64, cfg.StatsQueueSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("CATALOG_SEED", "42")
	t.Setenv("MOCK_TEST_COUNT", "5")

	cfg := config.Load()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.Equal(t, int64(42), cfg.CatalogSeed)
	assert.Equal(t, 5, cfg.MockTestCount)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "soon")
	t.Setenv("CATALOG_SEED", "lucky")
	t.Setenv("STATS_QUEUE_SIZE", "-")

	cfg := config.Load()

	assert.Equal(t, 720, cfg.TokenTTLHours)
	assert.Equal(t, int64(1), cfg.CatalogSeed)
	assert.Equal(t, 64, cfg.StatsQueueSize)
}
