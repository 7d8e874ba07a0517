package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/ranchgame/internal/storage"
)

// Storage backends
const (
	StorageMemory  = "memory"
	StorageRedis   = "redis"
	StorageSurreal = "surreal"
)

// Config is the server configuration, read from RANCHGAME_* environment variables
type Config struct {
	Addr            string        `env:"RANCHGAME_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"RANCHGAME_LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"RANCHGAME_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Identity
	Salt              string `env:"RANCHGAME_SALT" envDefault:"ranchgame|players|v1"`
	BootstrapCount    int    `env:"RANCHGAME_BOOTSTRAP_COUNT" envDefault:"0"`
	MaxBootstrapCount int    `env:"RANCHGAME_MAX_BOOTSTRAP_COUNT" envDefault:"100000"`

	// AdminTokenHash is the bcrypt hash of the admin bearer token; empty disables admin routes
	AdminTokenHash string `env:"RANCHGAME_ADMIN_TOKEN_HASH"`

	Storage string `env:"RANCHGAME_STORAGE" envDefault:"memory"`

	Redis   RedisConfig
	Surreal SurrealConfig

	OTelEndpoint string `env:"RANCHGAME_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"RANCHGAME_OTEL_ENABLED" envDefault:"true"`
}

// RedisConfig selects the Redis instance
type RedisConfig struct {
	URL               string `env:"RANCHGAME_REDIS_URL" envDefault:"redis://localhost:6379"`
	PoolSize          int    `env:"RANCHGAME_REDIS_POOL_SIZE" envDefault:"10"`
	TradeHistoryLimit int    `env:"RANCHGAME_REDIS_TRADE_HISTORY" envDefault:"100"`
}

// SurrealConfig selects the SurrealDB instance
type SurrealConfig struct {
	Host      string `env:"RANCHGAME_SURREAL_HOST" envDefault:"localhost"`
	Port      string `env:"RANCHGAME_SURREAL_PORT" envDefault:"8000"`
	User      string `env:"RANCHGAME_SURREAL_USER" envDefault:"root"`
	Password  string `env:"RANCHGAME_SURREAL_PASSWORD" envDefault:"root"`
	Namespace string `env:"RANCHGAME_SURREAL_NAMESPACE" envDefault:"ranchgame"`
	Database  string `env:"RANCHGAME_SURREAL_DATABASE" envDefault:"ranchgame"`
}

// Load reads the configuration from the environment and validates it
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects configurations the server cannot start with
func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageRedis, StorageSurreal:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.BootstrapCount < 0 {
		return fmt.Errorf("bootstrap count must not be negative, got %d", c.BootstrapCount)
	}
	if c.MaxBootstrapCount <= 0 || c.MaxBootstrapCount > storage.MaxBatchSize {
		return fmt.Errorf("max bootstrap count must be in [1, %d], got %d", storage.MaxBatchSize, c.MaxBootstrapCount)
	}
	if c.BootstrapCount > c.MaxBootstrapCount {
		return fmt.Errorf("bootstrap count %d exceeds max bootstrap count %d", c.BootstrapCount, c.MaxBootstrapCount)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
