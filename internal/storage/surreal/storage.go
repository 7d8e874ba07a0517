package surreal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"

	"github.com/mcoot/ranchgame/internal/dependencies/clock"
	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/storage"
)

var (
	// ErrConnection indicates a failure to connect to or communicate with the database
	ErrConnection = errors.New("database connection error")
	// ErrQuery indicates a query execution failure
	ErrQuery = errors.New("query error")
	// ErrDuplicate indicates a unique index violation
	ErrDuplicate = errors.New("duplicate record")
)

const bootstrapName = "players"

var schema = []string{
	"DEFINE TABLE IF NOT EXISTS player SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS player_key ON TABLE player FIELDS key UNIQUE",
	"DEFINE INDEX IF NOT EXISTS player_pid ON TABLE player FIELDS player_id UNIQUE",
	"DEFINE INDEX IF NOT EXISTS player_username ON TABLE player FIELDS username",
	"DEFINE INDEX IF NOT EXISTS player_points ON TABLE player FIELDS points",
	"DEFINE TABLE IF NOT EXISTS bootstrap SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS bootstrap_name ON TABLE bootstrap FIELDS name UNIQUE",
	"DEFINE TABLE IF NOT EXISTS trade SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS trade_pair ON TABLE trade FIELDS from_id, to_id",
}

// Storage is a SurrealDB-backed implementation of the storage interface
type Storage struct {
	db    *surrealdb.DB
	cfg   Config
	clock clock.Clock

	seqMu   sync.Mutex
	lastSeq int64
}

// New connects to SurrealDB, selects the namespace and database and defines the schema.
// clk stamps the insert order of players and trades.
func New(ctx context.Context, cfg Config, clk clock.Clock) (*Storage, error) {
	endpoint := fmt.Sprintf("ws://%s:%s", cfg.Host, cfg.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if _, err := db.SignIn(ctx, &surrealdb.Auth{
		Username: cfg.User,
		Password: cfg.Password,
	}); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s := &Storage{db: db, cfg: cfg, clock: clk}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close(ctx)
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) migrate(ctx context.Context) error {
	_, err := queryRows[any](ctx, s.db, strings.Join(schema, ";\n")+";", nil)
	if err != nil {
		return fmt.Errorf("define schema: %w", err)
	}
	return nil
}

// Player operations

func (s *Storage) GetOne(ctx context.Context, filter storage.PlayerFilter) (*model.Player, error) {
	var (
		sql  string
		vars map[string]any
	)
	switch {
	case filter.Key != "":
		sql = "SELECT * OMIT id FROM player WHERE key = $key LIMIT 1"
		vars = map[string]any{"key": filter.Key}
	case filter.Username != "":
		// Usernames are not unique; the earliest insert wins
		sql = "SELECT * OMIT id FROM player WHERE username = $username ORDER BY seq ASC LIMIT 1"
		vars = map[string]any{"username": filter.Username}
	default:
		return nil, model.ErrPlayerNotFound
	}
	return s.selectOne(ctx, sql, vars)
}

func (s *Storage) GetByID(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.selectOne(ctx, "SELECT * OMIT id FROM player WHERE player_id = $player_id LIMIT 1",
		map[string]any{"player_id": string(id)})
}

func (s *Storage) Create(ctx context.Context, player *model.Player) (*model.Player, error) {
	stored := player.Clone()
	stored.SetID(model.PlayerID(uuid.NewString()))

	vars := playerVars(stored)
	vars["seq"] = s.nextSeq(1)

	_, err := queryRows[any](ctx, s.db, `
		CREATE player CONTENT {
			player_id: $player_id,
			key: $key,
			username: $username,
			ranch: $ranch,
			points: $points,
			medals: $medals,
			token: $token,
			last_trade_in: $last_trade_in,
			last_trade_out: $last_trade_out,
			seq: $seq
		} RETURN NONE`, vars)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, model.ErrPlayerExists
		}
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

	_, err = queryRows[any](ctx, s.db, `
		UPDATE player SET
			ranch = $ranch,
			points = $points,
			medals = $medals,
			token = $token,
			last_trade_in = $last_trade_in,
			last_trade_out = $last_trade_out
		WHERE player_id = $player_id RETURN NONE`, playerVars(stored))
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Storage) TopPlayers(ctx context.Context, limit int) ([]*model.Player, error) {
	sql := "SELECT * OMIT id FROM player ORDER BY points DESC, username ASC, key ASC"
	vars := map[string]any{}
	if limit > 0 {
		sql += " LIMIT $limit"
		vars["limit"] = limit
	}

	rows, err := queryRows[playerRow](ctx, s.db, sql, vars)
	if err != nil {
		return nil, err
	}
	players := make([]*model.Player, len(rows))
	for i, r := range rows {
		players[i] = r.toPlayer()
	}
	return players, nil
}

func (s *Storage) Bootstrap(ctx context.Context, gen storage.Generator, count int, force bool) ([]*model.Player, error) {
	if !force {
		done, err := s.bootstrapped(ctx)
		if err != nil {
			return nil, err
		}
		if done {
			return nil, nil
		}
	}

	generated, err := storage.GenerateBatch(ctx, gen, count)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(generated))
	for i, p := range generated {
		keys[i] = p.Key
	}
	existingRows, err := queryRows[playerRow](ctx, s.db,
		"SELECT * OMIT id FROM player WHERE key IN $keys", map[string]any{"keys": keys})
	if err != nil {
		return nil, err
	}
	existing := make(map[string]*model.Player, len(existingRows))
	for _, r := range existingRows {
		existing[r.Key] = r.toPlayer()
	}

	result := make([]*model.Player, 0, len(generated))
	rows := make([]map[string]any, 0, len(generated))
	seen := make(map[string]bool, len(generated))
	base := s.nextSeq(len(generated))
	for i, p := range generated {
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
		row := playerVars(stored)
		row["seq"] = base + int64(i)
		rows = append(rows, row)
		result = append(result, stored)
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	if force {
		sb.WriteString("DELETE bootstrap WHERE name = $name;\n")
	}
	sb.WriteString("CREATE bootstrap CONTENT { name: $name, count: $count, created_at: time::now() } RETURN NONE;\n")
	if len(rows) > 0 {
		sb.WriteString("INSERT INTO player $rows RETURN NONE;\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	_, err = queryRows[any](ctx, s.db, sb.String(), map[string]any{
		"name":  bootstrapName,
		"count": count,
		"rows":  rows,
	})
	if err != nil {
		// Another bootstrap claimed the marker first
		if errors.Is(err, ErrDuplicate) && !force {
			return nil, nil
		}
		return nil, fmt.Errorf("bootstrap transaction: %w", err)
	}
	return result, nil
}

// Trade operations

func (s *Storage) SaveTrade(ctx context.Context, trade *model.Trade) error {
	if trade.ID == "" {
		trade.ID = model.TradeID(uuid.NewString())
	}
	_, err := queryRows[any](ctx, s.db, `
		CREATE trade CONTENT {
			trade_id: $trade_id,
			from_id: $from_id,
			to_id: $to_id,
			from_user: $from_user,
			to_user: $to_user,
			amount: $amount,
			trait: $trait,
			timestamp: $timestamp,
			seq: $seq
		} RETURN NONE`, map[string]any{
		"trade_id":  string(trade.ID),
		"from_id":   string(trade.FromID),
		"to_id":     string(trade.ToID),
		"from_user": trade.From,
		"to_user":   trade.To,
		"amount":    trade.Resource.Amount,
		"trait":     string(trade.Resource.Trait),
		"timestamp": trade.Timestamp.UnixMilli(),
		"seq":       s.nextSeq(1),
	})
	return err
}

func (s *Storage) GetLastTrade(ctx context.Context, from, to model.PlayerID) (*model.Trade, error) {
	rows, err := queryRows[tradeRow](ctx, s.db, `
		SELECT * OMIT id FROM trade
		WHERE from_id = $from_id AND to_id = $to_id
		ORDER BY timestamp DESC, seq DESC LIMIT 1`,
		map[string]any{"from_id": string(from), "to_id": string(to)})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.ErrTradeNotFound
	}
	return rows[0].toTrade(), nil
}

// nextSeq reserves n consecutive sequence numbers starting at the returned value.
// Sequences follow the clock but never repeat, even when the clock stalls or steps back.
func (s *Storage) nextSeq(n int) int64 {
	s.seqMu.Lock()
	defer s.seqMu.Unlock()
	next := s.clock.Now().UnixNano()
	if next <= s.lastSeq {
		next = s.lastSeq + 1
	}
	if n < 1 {
		n = 1
	}
	s.lastSeq = next + int64(n-1)
	return next
}

func (s *Storage) bootstrapped(ctx context.Context) (bool, error) {
	rows, err := queryRows[map[string]any](ctx, s.db,
		"SELECT name FROM bootstrap WHERE name = $name LIMIT 1", map[string]any{"name": bootstrapName})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (s *Storage) selectOne(ctx context.Context, sql string, vars map[string]any) (*model.Player, error) {
	rows, err := queryRows[playerRow](ctx, s.db, sql, vars)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, model.ErrPlayerNotFound
	}
	return rows[0].toPlayer(), nil
}

// queryRows runs sql and decodes the result of its last statement
func queryRows[T any](ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) ([]T, error) {
	if db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[[]T](ctx, db, sql, vars)
	if err != nil {
		return nil, classify(err.Error())
	}
	if results == nil {
		return nil, nil
	}

	var rows []T
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, classify(r.Error.Message)
			}
			return nil, ErrQuery
		}
		rows = r.Result
	}
	return rows, nil
}

// classify maps a SurrealDB error message onto the package errors
func classify(msg string) error {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "already contains") ||
		strings.Contains(lower, "unique") ||
		strings.Contains(lower, "duplicate") ||
		strings.Contains(lower, "already exists") {
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	}
	return fmt.Errorf("%w: %s", ErrQuery, msg)
}
