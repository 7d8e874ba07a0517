package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/ranchgame/internal/api"
	"github.com/mcoot/ranchgame/internal/config"
	"github.com/mcoot/ranchgame/internal/factory"
	redisstorage "github.com/mcoot/ranchgame/internal/storage/redis"
	"github.com/mcoot/ranchgame/internal/storage/surreal"
	"github.com/mcoot/ranchgame/internal/telemetry"
)

const serviceName = "ranchgame"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		logger.Error("failed to set up telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn("telemetry shutdown", slog.String("error", err.Error()))
		}
	}()

	app, err := factory.New(factoryConfig(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("storage close", slog.String("error", err.Error()))
		}
	}()

	if cfg.BootstrapCount > 0 {
		result, err := app.PlayerService.Bootstrap(ctx, cfg.BootstrapCount, false)
		if err != nil {
			logger.Error("startup bootstrap failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("startup bootstrap",
			slog.Int("count", cfg.BootstrapCount),
			slog.Int("written", len(result.Players)),
			slog.Bool("already_bootstrapped", result.AlreadyBootstrapped),
		)
	}

	if cfg.AdminTokenHash == "" {
		logger.Warn("no admin token hash configured, admin routes are disabled")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		PlayerService:  app.PlayerService,
		EconomyService: app.EconomyService,
		AdminTokenHash: cfg.AdminTokenHash,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr
	serverConfig.ShutdownTimeout = cfg.ShutdownTimeout
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func factoryConfig(cfg config.Config, logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:            logger,
		Salt:              cfg.Salt,
		MaxBootstrapCount: cfg.MaxBootstrapCount,
		StorageType:       cfg.Storage,
	}

	switch cfg.Storage {
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.TradeHistoryLimit = cfg.Redis.TradeHistoryLimit
		fc.RedisConfig = &redisCfg
	case config.StorageSurreal:
		surrealCfg := surreal.DefaultConfig()
		surrealCfg.Host = cfg.Surreal.Host
		surrealCfg.Port = cfg.Surreal.Port
		surrealCfg.User = cfg.Surreal.User
		surrealCfg.Password = cfg.Surreal.Password
		surrealCfg.Namespace = cfg.Surreal.Namespace
		surrealCfg.Database = cfg.Surreal.Database
		fc.SurrealConfig = &surrealCfg
	}

	return fc
}
