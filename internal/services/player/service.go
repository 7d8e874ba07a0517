package player

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/services/identity"
	"github.com/mcoot/ranchgame/internal/storage"
)

const tracerName = "github.com/mcoot/ranchgame/internal/services/player"

// DefaultLeaderboardLimit is used when a caller asks for a non-positive limit
const DefaultLeaderboardLimit = 10

// BootstrapResult reports the outcome of a bootstrap request.
// AlreadyBootstrapped is a defined no-op outcome, not an error.
type BootstrapResult struct {
	Players             []*model.Player
	AlreadyBootstrapped bool
}

// DefaultMaxBootstrapCount bounds a single bootstrap request
const DefaultMaxBootstrapCount = 100_000

// Config holds player service configuration
type Config struct {
	// MaxBootstrapCount is the largest population one bootstrap may issue
	MaxBootstrapCount int
}

// DefaultConfig returns the default player service configuration
func DefaultConfig() Config {
	return Config{
		MaxBootstrapCount: DefaultMaxBootstrapCount,
	}
}

// Service issues the player population and fronts the player repository
type Service struct {
	storage   storage.Storage
	generator *identity.Generator
	cfg       Config
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewService creates a new player service. A non-positive MaxBootstrapCount falls back to the default.
func NewService(storage storage.Storage, generator *identity.Generator, cfg Config, logger *slog.Logger) *Service {
	if cfg.MaxBootstrapCount <= 0 {
		cfg.MaxBootstrapCount = DefaultMaxBootstrapCount
	}
	return &Service{
		storage:   storage,
		generator: generator,
		cfg:       cfg,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
}

// MaxBootstrapCount returns the largest count Bootstrap accepts
func (s *Service) MaxBootstrapCount() int {
	return s.cfg.MaxBootstrapCount
}

// Bootstrap generates players for indices 0..count-1 and stores them in one batch
func (s *Service) Bootstrap(ctx context.Context, count int, force bool) (*BootstrapResult, error) {
	if count <= 0 || count > s.cfg.MaxBootstrapCount {
		return nil, model.ErrInvalidCount
	}

	ctx, span := s.tracer.Start(ctx, "player.Bootstrap", trace.WithAttributes(
		attribute.Int("bootstrap.count", count),
		attribute.Bool("bootstrap.force", force),
	))
	defer span.End()

	players, err := s.storage.Bootstrap(ctx, s.generator.Generate, count, force)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bootstrap failed")
		s.logger.Error("bootstrap failed",
			slog.Int("count", count),
			slog.Bool("force", force),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if players == nil {
		span.SetAttributes(attribute.Bool("bootstrap.already_bootstrapped", true))
		s.logger.Info("bootstrap skipped, already bootstrapped", slog.Int("count", count))
		return &BootstrapResult{AlreadyBootstrapped: true}, nil
	}

	s.logger.Info("players bootstrapped",
		slog.Int("count", len(players)),
		slog.Bool("force", force),
		slog.String("salt", s.generator.Salt()),
	)
	return &BootstrapResult{Players: players}, nil
}

// Identity derives the identity for index without touching storage
func (s *Service) Identity(index int) (*identity.Identity, error) {
	return s.generator.Derive(index)
}

// Create stores a new player. A username already in use is reported as ErrPlayerExists.
func (s *Service) Create(ctx context.Context, player *model.Player) (*model.Player, error) {
	_, err := s.storage.GetOne(ctx, storage.ByUsername(player.Username))
	switch {
	case err == nil:
		return nil, model.ErrPlayerExists
	case !errors.Is(err, model.ErrPlayerNotFound):
		return nil, err
	}

	created, err := s.storage.Create(ctx, player)
	if err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", created.IDString()),
		slog.String("username", created.Username),
		slog.String("ranch", string(created.Ranch)),
	)
	return created, nil
}

// Update replaces the stored state of the player with the same key
func (s *Service) Update(ctx context.Context, player *model.Player) (*model.Player, error) {
	if player.Points < 0 {
		return nil, model.ErrNegativePoints
	}
	return s.storage.UpdateOne(ctx, storage.ByKey(player.Key), player)
}

// Get retrieves a player by their secret key
func (s *Service) Get(ctx context.Context, key string) (*model.Player, error) {
	if key == "" {
		return nil, model.ErrPlayerNotFound
	}
	return s.storage.GetOne(ctx, storage.ByKey(key))
}

// GetByUsername retrieves a player by public username
func (s *Service) GetByUsername(ctx context.Context, username string) (*model.Player, error) {
	if username == "" {
		return nil, model.ErrPlayerNotFound
	}
	return s.storage.GetOne(ctx, storage.ByUsername(username))
}

// GetByID retrieves a player by storage identifier
func (s *Service) GetByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetByID(ctx, id)
}

// Leaderboard returns the highest scoring players
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*model.Player, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	return s.storage.TopPlayers(ctx, limit)
}
