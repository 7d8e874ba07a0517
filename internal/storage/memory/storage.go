package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players       map[model.PlayerID]*model.Player
	keyIndex      map[string]model.PlayerID
	usernameIndex map[string]model.PlayerID
	trades        map[tradePair][]*model.Trade
	bootstrapped  bool
}

type tradePair struct {
	from model.PlayerID
	to   model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		keyIndex:      make(map[string]model.PlayerID),
		usernameIndex: make(map[string]model.PlayerID),
		trades:        make(map[tradePair][]*model.Trade),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) GetOne(ctx context.Context, filter storage.PlayerFilter) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.lookup(filter)
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return p.Clone(), nil
}

func (s *Storage) GetByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return p.Clone(), nil
}

func (s *Storage) Create(ctx context.Context, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keyIndex[player.Key]; ok {
		return nil, model.ErrPlayerExists
	}
	stored := player.Clone()
	stored.SetID(model.PlayerID(uuid.NewString()))
	s.insert(stored)
	return stored.Clone(), nil
}

func (s *Storage) UpdateOne(ctx context.Context, filter storage.PlayerFilter, player *model.Player) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.lookup(filter)
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	if player.Key != existing.Key {
		return nil, model.ErrKeyImmutable
	}
	if player.Username != existing.Username {
		return nil, model.ErrUsernameImmutable
	}
	stored := player.Clone()
	stored.ID = existing.ID
	s.players[*stored.ID] = stored
	return stored.Clone(), nil
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p.Clone())
	}
	storage.SortByPoints(players)
	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

func (s *Storage) Bootstrap(ctx context.Context, gen storage.Generator, count int, force bool) ([]*model.Player, error) {
	s.mu.RLock()
	done := s.bootstrapped
	s.mu.RUnlock()
	if done && !force {
		return nil, nil
	}

	generated, err := storage.GenerateBatch(ctx, gen, count)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bootstrapped && !force {
		return nil, nil
	}

	// Stage everything first so a batch is never half-applied
	result := make([]*model.Player, 0, len(generated))
	staged := make([]*model.Player, 0, len(generated))
	stagedKeys := make(map[string]bool, len(generated))
	for _, p := range generated {
		if id, ok := s.keyIndex[p.Key]; ok {
			result = append(result, s.players[id].Clone())
			continue
		}
		if stagedKeys[p.Key] {
			continue
		}
		stored := p.Clone()
		stored.SetID(model.PlayerID(uuid.NewString()))
		staged = append(staged, stored)
		stagedKeys[p.Key] = true
		result = append(result, stored.Clone())
	}

	for _, p := range staged {
		s.insert(p)
	}
	s.bootstrapped = true
	return result, nil
}

// Trade operations

func (s *Storage) SaveTrade(ctx context.Context, trade *model.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if trade.ID == "" {
		trade.ID = model.TradeID(uuid.NewString())
	}
	stored := *trade
	key := tradePair{from: trade.FromID, to: trade.ToID}
	s.trades[key] = append(s.trades[key], &stored)
	return nil
}

func (s *Storage) GetLastTrade(ctx context.Context, from, to model.PlayerID) (*model.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trades := s.trades[tradePair{from: from, to: to}]
	if len(trades) == 0 {
		return nil, model.ErrTradeNotFound
	}
	last := *trades[len(trades)-1]
	return &last, nil
}

// lookup must be called with the lock held
func (s *Storage) lookup(filter storage.PlayerFilter) (*model.Player, bool) {
	var (
		id model.PlayerID
		ok bool
	)
	switch {
	case filter.Key != "":
		id, ok = s.keyIndex[filter.Key]
	case filter.Username != "":
		id, ok = s.usernameIndex[filter.Username]
	}
	if !ok {
		return nil, false
	}
	p, ok := s.players[id]
	return p, ok
}

// insert must be called with the write lock held.
// Usernames are not unique; the index keeps the first player to claim one.
func (s *Storage) insert(p *model.Player) {
	id := *p.ID
	s.players[id] = p
	s.keyIndex[p.Key] = id
	if _, taken := s.usernameIndex[p.Username]; !taken {
		s.usernameIndex[p.Username] = id
	}
}
