package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/ranchgame/internal/dependencies/clock"
	"github.com/mcoot/ranchgame/internal/services/economy"
	"github.com/mcoot/ranchgame/internal/services/identity"
	"github.com/mcoot/ranchgame/internal/services/player"
	"github.com/mcoot/ranchgame/internal/storage"
	"github.com/mcoot/ranchgame/internal/storage/memory"
	redisstorage "github.com/mcoot/ranchgame/internal/storage/redis"
	"github.com/mcoot/ranchgame/internal/storage/surreal"
)

// Storage type constants
const (
	StorageTypeMemory  = "memory"
	StorageTypeRedis   = "redis"
	StorageTypeSurreal = "surreal"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Generator      *identity.Generator
	PlayerService  *player.Service
	EconomyService *economy.Service

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// Salt seeds every player identity (optional)
	// If empty, identity.DefaultSalt is used
	Salt string
	// MaxBootstrapCount caps a single bootstrap request (optional)
	// If zero, player.DefaultMaxBootstrapCount is used
	MaxBootstrapCount int
	// StorageType selects the storage backend ("memory", "redis" or "surreal")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SurrealConfig holds SurrealDB connection settings (required if StorageType is "surreal")
	SurrealConfig *surreal.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	// Create storage based on type
	var (
		store  storage.Storage
		closer io.Closer
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store, closer = redisStore, redisStore
	case StorageTypeSurreal:
		if cfg.SurrealConfig == nil {
			return nil, errors.New("SurrealConfig required when StorageType is surreal")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		surrealStore, err := surreal.New(ctx, *cfg.SurrealConfig, clk)
		if err != nil {
			return nil, err
		}
		store, closer = surrealStore, surrealStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'surreal'")
	}

	logger.Info("storage ready", slog.String("storage", storageType))

	playerCfg := player.Config{MaxBootstrapCount: cfg.MaxBootstrapCount}
	app := newWithDependencies(store, clk, identity.NewGenerator(cfg.Salt), playerCfg, logger)
	app.closer = closer
	return app, nil
}

// Close releases the storage connection, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, gen *identity.Generator, playerCfg player.Config, logger *slog.Logger) *App {
	return &App{
		Storage:        store,
		Clock:          clk,
		Generator:      gen,
		PlayerService:  player.NewService(store, gen, playerCfg, logger),
		EconomyService: economy.NewService(store, clk, logger),
	}
}
