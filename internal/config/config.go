package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	DBDriver                string
	DBDSN                   string
	LogLevel                string
	LogFormat               string
	JWTSecret               string
	ClientOrigins           []string
	RedisAddr               string
	LeaderboardCacheTTL     time.Duration
	LeaderboardDefaultLimit int
	LeaderboardMaxLimit     int
	TxMaxRetries            int
	TxTimeout               time.Duration
	WorkerCount             int
	QueueSize               int
	EngagementFloorSec      int
	EligibleXPCap           int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                    envOr("ADDR", ":8080"),
		DBDriver:                envOr("DB_DRIVER", "sqlite3"),
		DBDSN:                   envOr("DB_DSN", "file:questledger.db"),
		LogLevel:                envOr("LOG_LEVEL", "INFO"),
		LogFormat:               envOr("LOG_FORMAT", "text"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		ClientOrigins:           envListOr("CLIENT_ORIGIN", []string{"http://localhost:3000"}),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		LeaderboardCacheTTL:     time.Duration(envIntOr("LEADERBOARD_CACHE_TTL", 30)) * time.Second,
		LeaderboardDefaultLimit: envIntOr("LEADERBOARD_DEFAULT_LIMIT", 50),
		LeaderboardMaxLimit:     envIntOr("LEADERBOARD_MAX_LIMIT", 100),
		TxMaxRetries:            envIntOr("TX_MAX_RETRIES", 3),
		TxTimeout:               time.Duration(envIntOr("TX_TIMEOUT", 10)) * time.Second,
		WorkerCount:             envIntOr("WORKER_COUNT", 2),
		QueueSize:               envIntOr("QUEUE_SIZE", 64),
		EngagementFloorSec:      envIntOr("ENGAGEMENT_FLOOR_SEC", 20),
		EligibleXPCap:           envIntOr("ELIGIBLE_XP_CAP", 300),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", c.DBDriver))
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		errs = append(errs, errors.New("DB_DSN cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.LeaderboardCacheTTL < 0 {
		errs = append(errs, errors.New("LEADERBOARD_CACHE_TTL cannot be negative"))
	}
	if c.LeaderboardDefaultLimit < 1 {
		errs = append(errs, errors.New("LEADERBOARD_DEFAULT_LIMIT must be positive"))
	}
	if c.LeaderboardMaxLimit < c.LeaderboardDefaultLimit {
		errs = append(errs, errors.New("LEADERBOARD_MAX_LIMIT must be >= LEADERBOARD_DEFAULT_LIMIT"))
	}
	if c.TxMaxRetries < 0 || c.TxMaxRetries > 10 {
		errs = append(errs, fmt.Errorf("TX_MAX_RETRIES must be between 0 and 10, got %d", c.TxMaxRetries))
	}
	if c.TxTimeout <= 0 {
		errs = append(errs, errors.New("TX_TIMEOUT must be positive"))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount))
	}
	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("QUEUE_SIZE must be positive, got %d", c.QueueSize))
	}
	if c.EngagementFloorSec < 0 {
		errs = append(errs, errors.New("ENGAGEMENT_FLOOR_SEC cannot be negative"))
	}
	if c.EligibleXPCap < 1 {
		errs = append(errs, errors.New("ELIGIBLE_XP_CAP must be positive"))
	}

	return errors.Join(errs...)
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

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
