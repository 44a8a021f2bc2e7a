package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/questledger/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                    ":8080",
		DBDriver:                "sqlite3",
		DBDSN:                   "file:test.db",
		LogLevel:                "INFO",
		LogFormat:               "text",
		JWTSecret:               "0123456789abcdef",
		LeaderboardCacheTTL:     30 * time.Second,
		LeaderboardDefaultLimit: 50,
		LeaderboardMaxLimit:     100,
		TxMaxRetries:            3,
		TxTimeout:               10 * time.Second,
		WorkerCount:             2,
		QueueSize:               64,
		EngagementFloorSec:      20,
		EligibleXPCap:           300,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_SingleField(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"unknown driver", func(c *config.Config) { c.DBDriver = "mysql" }, "DB_DRIVER"},
		{"empty dsn", func(c *config.Config) { c.DBDSN = " " }, "DB_DSN cannot be empty"},
		{"bad log level", func(c *config.Config) { c.LogLevel = "LOUD" }, "LOG_LEVEL"},
		{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"short secret", func(c *config.Config) { c.JWTSecret = "short" }, "JWT_SECRET"},
		{"zero default limit", func(c *config.Config) { c.LeaderboardDefaultLimit = 0 }, "LEADERBOARD_DEFAULT_LIMIT"},
		{"max below default", func(c *config.Config) { c.LeaderboardMaxLimit = 10 }, "LEADERBOARD_MAX_LIMIT"},
		{"negative retries", func(c *config.Config) { c.TxMaxRetries = -1 }, "TX_MAX_RETRIES"},
		{"unbounded retries", func(c *config.Config) { c.TxMaxRetries = 100 }, "TX_MAX_RETRIES"},
		{"zero tx timeout", func(c *config.Config) { c.TxTimeout = 0 }, "TX_TIMEOUT"},
		{"zero workers", func(c *config.Config) { c.WorkerCount = 0 }, "WORKER_COUNT"},
		{"zero queue", func(c *config.Config) { c.QueueSize = 0 }, "QUEUE_SIZE"},
		{"zero xp cap", func(c *config.Config) { c.EligibleXPCap = 0 }, "ELIGIBLE_XP_CAP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_LowercaseLevelAccepted(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "JSON"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.DBDSN = ""
	cfg.JWTSecret = ""
	cfg.WorkerCount = 0

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_DSN cannot be empty")
	assert.Contains(t, errStr, "JWT_SECRET")
	assert.Contains(t, errStr, "WORKER_COUNT")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_DSN", "custom.db")
	t.Setenv("CLIENT_ORIGIN", "https://a.example, https://b.example")
	t.Setenv("TX_MAX_RETRIES", "5")
	t.Setenv("LEADERBOARD_CACHE_TTL", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBDSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.ClientOrigins)
	assert.Equal(t, 5, cfg.TxMaxRetries)
	assert.Equal(t, 30*time.Second, cfg.LeaderboardCacheTTL)
}
