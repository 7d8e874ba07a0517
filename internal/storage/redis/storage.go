package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) GetOne(ctx context.Context, filter storage.PlayerFilter) (*model.Player, error) {
	id, err := s.resolve(ctx, s.client, filter)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Storage) GetByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return decodePlayer(data)
}

func (s *Storage) Create(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := player.Clone()
	stored.SetID(model.PlayerID(uuid.NewString()))

	// Claim the key first; it is the unique credential
	claimed, err := s.client.SetNX(ctx, keyIndexKey(stored.Key), stored.IDString(), 0).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, model.ErrPlayerExists
	}

	if _, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return writePlayer(ctx, pipe, stored)
	}); err != nil {
		s.client.Del(ctx, keyIndexKey(stored.Key))
		return nil, err
	}
	return stored, nil
}

func (s *Storage) UpdateOne(ctx context.Context, filter storage.PlayerFilter, player *model.Player) (*model.Player, error) {
	existing, err := s.GetOne(ctx, filter)
	if err != nil {
		return nil, err
	}
	if player.Key != existing.Key {
		return nil, model.ErrKeyImmutable
	}
	if player.Username != existing.Username {
		return nil, model.ErrUsernameImmutable
	}

	stored := player.Clone()
	stored.ID = existing.ID

	data, err := json.Marshal(stored.ToRecord(true))
	if err != nil {
		return nil, err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, playerKey(*stored.ID), data, 0)
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{Score: float64(stored.Points), Member: stored.IDString()})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]*model.Player, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, leaderboardKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	playerKeys := make([]string, len(ids))
	for i, id := range ids {
		playerKeys[i] = playerKey(model.PlayerID(id))
	}

	players, err := mgetPlayers(ctx, s.client, playerKeys)
	if err != nil {
		return nil, err
	}
	storage.SortByPoints(players)
	return players, nil
}

func (s *Storage) Bootstrap(ctx context.Context, gen storage.Generator, count int, force bool) ([]*model.Player, error) {
	if !force {
		done, err := s.client.Exists(ctx, bootstrappedKey()).Result()
		if err != nil {
			return nil, err
		}
		if done > 0 {
			return nil, nil
		}
	}

	generated, err := storage.GenerateBatch(ctx, gen, count)
	if err != nil {
		return nil, err
	}

	var (
		result  []*model.Player
		already bool
	)

	// The marker is watched so a concurrent bootstrap aborts this transaction
	txf := func(tx *redis.Tx) error {
		if !force {
			done, err := tx.Exists(ctx, bootstrappedKey()).Result()
			if err != nil {
				return err
			}
			if done > 0 {
				already = true
				return nil
			}
		}

		existing, err := existingByKey(ctx, tx, generated)
		if err != nil {
			return err
		}

		result = make([]*model.Player, 0, len(generated))
		staged := make([]*model.Player, 0, len(generated))
		seen := make(map[string]bool, len(generated))
		for _, p := range generated {
			if prev, ok := existing[p.Key]; ok {
				result = append(result, prev)
				continue
			}
			if seen[p.Key] {
				continue
			}
			seen[p.Key] = true
			stored := p.Clone()
			stored.SetID(model.PlayerID(uuid.NewString()))
			staged = append(staged, stored)
			result = append(result, stored)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, p := range staged {
				pipe.SetNX(ctx, keyIndexKey(p.Key), p.IDString(), 0)
				if err := writePlayer(ctx, pipe, p); err != nil {
					return err
				}
			}
			pipe.Set(ctx, bootstrappedKey(), "1", 0)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, bootstrappedKey()); err != nil {
		if errors.Is(err, redis.TxFailedErr) && !force {
			return nil, nil
		}
		return nil, fmt.Errorf("bootstrap transaction: %w", err)
	}
	if already {
		return nil, nil
	}
	return result, nil
}

// Trade operations

func (s *Storage) SaveTrade(ctx context.Context, trade *model.Trade) error {
	if trade.ID == "" {
		trade.ID = model.TradeID(uuid.NewString())
	}
	data, err := json.Marshal(trade)
	if err != nil {
		return err
	}

	key := tradesKey(trade.FromID, trade.ToID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	if s.cfg.TradeHistoryLimit > 0 {
		pipe.LTrim(ctx, key, 0, int64(s.cfg.TradeHistoryLimit-1))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetLastTrade(ctx context.Context, from, to model.PlayerID) (*model.Trade, error) {
	data, err := s.client.LIndex(ctx, tradesKey(from, to), 0).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTradeNotFound
		}
		return nil, err
	}

	var trade model.Trade
	if err := json.Unmarshal(data, &trade); err != nil {
		return nil, err
	}
	return &trade, nil
}

// resolve looks up the player id selected by filter
func (s *Storage) resolve(ctx context.Context, c redis.Cmdable, filter storage.PlayerFilter) (model.PlayerID, error) {
	var indexKey string
	switch {
	case filter.Key != "":
		indexKey = keyIndexKey(filter.Key)
	case filter.Username != "":
		indexKey = usernameIndexKey(filter.Username)
	default:
		return "", model.ErrPlayerNotFound
	}

	id, err := c.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrPlayerNotFound
		}
		return "", err
	}
	return model.PlayerID(id), nil
}

// writePlayer queues the record, the username index and the leaderboard entry.
// The key index is claimed separately by the caller.
func writePlayer(ctx context.Context, pipe redis.Pipeliner, p *model.Player) error {
	data, err := json.Marshal(p.ToRecord(true))
	if err != nil {
		return err
	}
	pipe.Set(ctx, playerKey(*p.ID), data, 0)
	// Usernames are not unique; the first player to claim one keeps the index entry
	pipe.SetNX(ctx, usernameIndexKey(p.Username), p.IDString(), 0)
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{Score: float64(p.Points), Member: p.IDString()})
	return nil
}

// existingByKey returns the stored players whose keys appear in players
func existingByKey(ctx context.Context, c redis.Cmdable, players []*model.Player) (map[string]*model.Player, error) {
	indexKeys := make([]string, len(players))
	for i, p := range players {
		indexKeys[i] = keyIndexKey(p.Key)
	}

	ids, err := c.MGet(ctx, indexKeys...).Result()
	if err != nil {
		return nil, err
	}

	var playerKeys []string
	for _, id := range ids {
		if s, ok := id.(string); ok {
			playerKeys = append(playerKeys, playerKey(model.PlayerID(s)))
		}
	}
	if len(playerKeys) == 0 {
		return map[string]*model.Player{}, nil
	}

	found, err := mgetPlayers(ctx, c, playerKeys)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.Player, len(found))
	for _, p := range found {
		out[p.Key] = p
	}
	return out, nil
}

// mgetPlayers fetches player records, skipping any that have disappeared
func mgetPlayers(ctx context.Context, c redis.Cmdable, keys []string) ([]*model.Player, error) {
	results, err := c.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(results))
	for _, result := range results {
		if result == nil {
			continue
		}
		str, ok := result.(string)
		if !ok {
			continue
		}
		p, err := decodePlayer([]byte(str))
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func decodePlayer(data []byte) (*model.Player, error) {
	var record model.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return model.NewPlayerFromRecord(record), nil
}
