package storage

import (
	"context"

	"github.com/mcoot/ranchgame/internal/model"
)

// PlayerFilter selects a single player by key or username.
// Key takes precedence when both are set.
type PlayerFilter struct {
	Key      string
	Username string
}

// ByKey filters on the secret player key
func ByKey(key string) PlayerFilter {
	return PlayerFilter{Key: key}
}

// ByUsername filters on the public username
func ByUsername(username string) PlayerFilter {
	return PlayerFilter{Username: username}
}

// IsEmpty reports whether the filter selects nothing
func (f PlayerFilter) IsEmpty() bool {
	return f.Key == "" && f.Username == ""
}

// Matches reports whether the player satisfies the filter
func (f PlayerFilter) Matches(p *model.Player) bool {
	if f.Key != "" {
		return p.Key == f.Key
	}
	return f.Username != "" && p.Username == f.Username
}

// Generator builds the player for one bootstrap index
type Generator func(index int) (*model.Player, error)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	GetOne(ctx context.Context, filter PlayerFilter) (*model.Player, error)
	GetByID(ctx context.Context, id model.PlayerID) (*model.Player, error)
	Create(ctx context.Context, player *model.Player) (*model.Player, error)
	UpdateOne(ctx context.Context, filter PlayerFilter, player *model.Player) (*model.Player, error)
	TopPlayers(ctx context.Context, limit int) ([]*model.Player, error)

	// Bootstrap generates and stores players 0..count-1 in one all-or-nothing write.
	// It returns (nil, nil) without calling gen when a bootstrap already ran and force is false.
	// With force, players whose key is already stored are kept as they are.
	Bootstrap(ctx context.Context, gen Generator, count int, force bool) ([]*model.Player, error)

	// Trade operations. History is kept per ordered pair of player ids.
	SaveTrade(ctx context.Context, trade *model.Trade) error
	GetLastTrade(ctx context.Context, from, to model.PlayerID) (*model.Trade, error)
}
