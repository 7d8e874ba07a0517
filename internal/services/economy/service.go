package economy

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/ranchgame/internal/dependencies/clock"
	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/storage"
)

const tracerName = "github.com/mcoot/ranchgame/internal/services/economy"

// Quote is the resource a trade would award right now
type Quote struct {
	FromID    model.PlayerID
	ToID      model.PlayerID
	From      string
	To        string
	Resource  model.Resource
	LastTrade *model.Trade
}

// Service prices and executes trades between players
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	tracer  trace.Tracer

	// Serializes trades so a pair's decay is read and written atomically
	mu sync.Mutex
}

// NewService creates a new economy service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}
}

// Quote prices a trade from the player holding key to the player stored as toID
func (s *Service) Quote(ctx context.Context, key string, toID model.PlayerID) (*Quote, error) {
	from, to, err := s.resolvePair(ctx, key, toID)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, from, to)
}

// Trade executes a trade from the player holding key to the player stored as toID.
// The initiator is credited with the resource amount.
func (s *Service) Trade(ctx context.Context, key string, toID model.PlayerID) (*model.Trade, *model.Player, error) {
	ctx, span := s.tracer.Start(ctx, "economy.Trade", trace.WithAttributes(
		attribute.String("trade.to_id", string(toID)),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	trade, from, err := s.trade(ctx, key, toID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "trade failed")
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.String("trade.id", string(trade.ID)),
		attribute.Int("trade.amount", trade.Resource.Amount),
	)
	s.logger.Info("trade completed",
		slog.String("trade_id", string(trade.ID)),
		slog.String("from_id", string(trade.FromID)),
		slog.String("to_id", string(trade.ToID)),
		slog.Int("amount", trade.Resource.Amount),
		slog.String("trait", string(trade.Resource.Trait)),
	)
	return trade, from, nil
}

// trade must be called with mu held
func (s *Service) trade(ctx context.Context, key string, toID model.PlayerID) (*model.Trade, *model.Player, error) {
	from, to, err := s.resolvePair(ctx, key, toID)
	if err != nil {
		return nil, nil, err
	}

	q, err := s.quote(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	millis := now.UnixMilli()

	trade := &model.Trade{
		ID:        model.TradeID(uuid.NewString()),
		FromID:    *from.ID,
		ToID:      *to.ID,
		From:      from.Username,
		To:        to.Username,
		Resource:  q.Resource,
		Timestamp: now,
	}

	if err := from.AddPoints(trade.Resource.Amount); err != nil {
		return nil, nil, err
	}
	from.LastTradeIn = &millis
	to.LastTradeOut = &millis

	if err := s.storage.SaveTrade(ctx, trade); err != nil {
		s.logger.Error("failed to save trade",
			slog.String("from_id", string(trade.FromID)),
			slog.String("to_id", string(trade.ToID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	updated, err := s.storage.UpdateOne(ctx, storage.ByKey(from.Key), from)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.storage.UpdateOne(ctx, storage.ByKey(to.Key), to); err != nil {
		return nil, nil, err
	}
	return trade, updated, nil
}

// resolvePair loads both sides of a trade. Usernames are not unique, so the
// counterpart is addressed by id and identity is decided by key alone.
func (s *Service) resolvePair(ctx context.Context, key string, toID model.PlayerID) (*model.Player, *model.Player, error) {
	if key == "" || toID == "" {
		return nil, nil, model.ErrPlayerNotFound
	}

	from, err := s.storage.GetOne(ctx, storage.ByKey(key))
	if err != nil {
		return nil, nil, err
	}
	to, err := s.storage.GetByID(ctx, toID)
	if err != nil {
		return nil, nil, err
	}
	if to.Key == from.Key {
		return nil, nil, model.ErrSelfTrade
	}
	return from, to, nil
}

func (s *Service) quote(ctx context.Context, from, to *model.Player) (*Quote, error) {
	last, err := s.storage.GetLastTrade(ctx, *from.ID, *to.ID)
	if err != nil {
		if !errors.Is(err, model.ErrTradeNotFound) {
			return nil, err
		}
		last = nil
	}

	resource, err := NextResource(to.Ranch, last)
	if err != nil {
		return nil, err
	}

	return &Quote{
		FromID:    *from.ID,
		ToID:      *to.ID,
		From:      from.Username,
		To:        to.Username,
		Resource:  resource,
		LastTrade: last,
	}, nil
}
