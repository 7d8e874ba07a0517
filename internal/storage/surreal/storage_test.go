package surreal

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ranchgame/internal/dependencies/clock"
	"github.com/mcoot/ranchgame/internal/dependencies/mocks"
	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/storage"
)

func TestClassify(t *testing.T) {
	err := classify("Database index `player_key` already contains 'abc', with record `player:xyz`")
	assert.ErrorIs(t, err, ErrDuplicate)

	err = classify("Parse error: unexpected token")
	assert.ErrorIs(t, err, ErrQuery)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestPlayerRowRoundTrip(t *testing.T) {
	p := model.NewPlayer("k1", "alice", model.RanchComet)
	p.Points = 90
	p.AddMedal("first-trade")
	in := int64(1704110400000)
	p.LastTradeIn = &in
	p.SetID("pid-1")

	vars := playerVars(p)
	row := playerRow{
		PlayerID:    vars["player_id"].(string),
		Key:         vars["key"].(string),
		Username:    vars["username"].(string),
		Ranch:       vars["ranch"].(string),
		Points:      vars["points"].(int),
		Medals:      vars["medals"].([]string),
		LastTradeIn: vars["last_trade_in"].(*int64),
	}

	got := row.toPlayer()
	require.NotNil(t, got.ID)
	assert.Equal(t, model.PlayerID("pid-1"), *got.ID)
	assert.Equal(t, model.RanchComet, got.Ranch)
	assert.Equal(t, 90, got.Points)
	assert.Equal(t, []string{"first-trade"}, got.Medals)
	assert.Equal(t, in, *got.LastTradeIn)
	assert.Nil(t, got.LastTradeOut)
}

func TestTradeRowTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	trade := tradeRow{TradeID: "t1", FromID: "p-a", ToID: "p-b", FromUser: "a", ToUser: "b", Amount: 400, Trait: "speed", Timestamp: ts.UnixMilli()}.toTrade()
	assert.Equal(t, model.PlayerID("p-a"), trade.FromID)
	assert.Equal(t, model.PlayerID("p-b"), trade.ToID)

	assert.True(t, ts.Equal(trade.Timestamp))
	assert.Equal(t, model.TraitSpeed, trade.Resource.Trait)
}

func TestNextSeqFollowsInjectedClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clk := mocks.NewMockClock(start)
	s := &Storage{clock: clk}

	assert.Equal(t, start.UnixNano(), s.nextSeq(1))
	assert.Equal(t, 1, clk.Calls())

	// A stalled clock still yields distinct, increasing values
	assert.Equal(t, start.UnixNano()+1, s.nextSeq(1))

	// A batch reserves a run of values
	base := s.nextSeq(5)
	assert.Equal(t, start.UnixNano()+2, base)
	assert.Equal(t, base+5, s.nextSeq(1))

	clk.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second).UnixNano(), s.nextSeq(1))

	clk.Set(start)
	assert.Greater(t, s.nextSeq(1), start.Add(time.Second).UnixNano())
}

// StorageSuite runs against a live SurrealDB when RANCHGAME_TEST_SURREAL_HOST is set
type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	host := os.Getenv("RANCHGAME_TEST_SURREAL_HOST")
	if host == "" {
		t.Skip("RANCHGAME_TEST_SURREAL_HOST not set")
	}
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.ctx = context.Background()

	cfg := DefaultConfig()
	cfg.Host = os.Getenv("RANCHGAME_TEST_SURREAL_HOST")
	if port := os.Getenv("RANCHGAME_TEST_SURREAL_PORT"); port != "" {
		cfg.Port = port
	}
	// A fresh database per test keeps runs independent
	cfg.Database = "test_" + uuid.NewString()[:8]

	st, err := New(s.ctx, cfg, clock.New())
	s.Require().NoError(err)
	s.storage = st
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) gen(index int) (*model.Player, error) {
	ranch, err := model.RanchFromIndex(index)
	if err != nil {
		return nil, err
	}
	return model.NewPlayer(fmt.Sprintf("key-%03d", index), fmt.Sprintf("user-%03d", index), ranch), nil
}

func (s *StorageSuite) TestCreateAndGet() {
	created, err := s.storage.Create(s.ctx, model.NewPlayer("k1", "alice", model.RanchSolar))
	s.Require().NoError(err)

	got, err := s.storage.GetOne(s.ctx, storage.ByKey("k1"))
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)

	byID, err := s.storage.GetByID(s.ctx, *created.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)

	_, err = s.storage.Create(s.ctx, model.NewPlayer("k1", "bob", model.RanchSolar))
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *StorageSuite) TestBootstrapOnce() {
	players, err := s.storage.Bootstrap(s.ctx, s.gen, 6, false)
	s.Require().NoError(err)
	s.Len(players, 6)

	again, err := s.storage.Bootstrap(s.ctx, s.gen, 6, false)
	s.Require().NoError(err)
	s.Nil(again)

	forced, err := s.storage.Bootstrap(s.ctx, s.gen, 8, true)
	s.Require().NoError(err)
	s.Len(forced, 8)
	s.Equal(players[0].ID, forced[0].ID)
}

func (s *StorageSuite) TestUpdateAndLeaderboard() {
	players, err := s.storage.Bootstrap(s.ctx, s.gen, 3, false)
	s.Require().NoError(err)

	p := players[2]
	p.Points = 500
	_, err = s.storage.UpdateOne(s.ctx, storage.ByKey(p.Key), p)
	s.Require().NoError(err)

	top, err := s.storage.TopPlayers(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(p.Key, top[0].Key)
}

func (s *StorageSuite) TestTrades() {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.storage.SaveTrade(s.ctx, &model.Trade{FromID: "p-a", ToID: "p-b", From: "a", To: "b", Resource: model.Resource{Amount: 800}, Timestamp: ts}))
	s.Require().NoError(s.storage.SaveTrade(s.ctx, &model.Trade{FromID: "p-a", ToID: "p-b", From: "a", To: "b", Resource: model.Resource{Amount: 400}, Timestamp: ts.Add(time.Second)}))

	last, err := s.storage.GetLastTrade(s.ctx, "p-a", "p-b")
	s.Require().NoError(err)
	s.Equal(400, last.Resource.Amount)
	s.Equal("b", last.To)

	_, err = s.storage.GetLastTrade(s.ctx, "p-b", "p-a")
	s.ErrorIs(err, model.ErrTradeNotFound)

	// Same usernames, another player
	_, err = s.storage.GetLastTrade(s.ctx, "p-c", "p-b")
	s.ErrorIs(err, model.ErrTradeNotFound)
}

func (s *StorageSuite) TestUpdateOneRejectsUsernameChange() {
	created, err := s.storage.Create(s.ctx, model.NewPlayer("k1", "alice", model.RanchSolar))
	s.Require().NoError(err)

	created.Username = "mallory"
	created.Points = 10
	_, err = s.storage.UpdateOne(s.ctx, storage.ByKey("k1"), created)
	s.ErrorIs(err, model.ErrUsernameImmutable)

	got, err := s.storage.GetOne(s.ctx, storage.ByUsername("alice"))
	s.Require().NoError(err)
	s.Equal(0, got.Points)
	_, err = s.storage.GetOne(s.ctx, storage.ByUsername("mallory"))
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
