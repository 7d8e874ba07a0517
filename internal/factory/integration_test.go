package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/services/economy"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: bootstrap the population, trade between two players and read the leaderboard
func (s *IntegrationSuite) TestBootstrapTradeLeaderboardFlow() {
	// Step 1: Bootstrap a population
	result, err := s.app.PlayerService.Bootstrap(s.ctx, 12, false)
	s.Require().NoError(err)
	s.Require().Len(result.Players, 12)

	alice := result.Players[0]
	bob := result.Players[1]

	// Step 2: A second bootstrap is a no-op
	again, err := s.app.PlayerService.Bootstrap(s.ctx, 12, false)
	s.Require().NoError(err)
	s.True(again.AlreadyBootstrapped)

	// Step 3: Quote and trade
	quote, err := s.app.EconomyService.Quote(s.ctx, alice.Key, *bob.ID)
	s.Require().NoError(err)
	s.Equal(economy.TradePoints, quote.Resource.Amount)

	trait, err := bob.Ranch.Trait()
	s.Require().NoError(err)
	s.Equal(trait, quote.Resource.Trait)

	trade, updated, err := s.app.EconomyService.Trade(s.ctx, alice.Key, *bob.ID)
	s.Require().NoError(err)
	s.Equal(quote.Resource, trade.Resource)
	s.Equal(economy.TradePoints, updated.Points)

	// Step 4: The repeat trade has decayed
	s.app.MockClock.Advance(time.Hour)
	trade, _, err = s.app.EconomyService.Trade(s.ctx, alice.Key, *bob.ID)
	s.Require().NoError(err)
	s.Equal(economy.TradePoints/economy.TradePointsDivisor, trade.Resource.Amount)

	// Step 5: Alice leads the leaderboard
	top, err := s.app.PlayerService.Leaderboard(s.ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(top, 3)
	s.Equal(alice.Key, top[0].Key)
	s.Equal(1200, top[0].Points)

	// Step 6: Timestamps come from the clock
	stored, err := s.app.PlayerService.Get(s.ctx, alice.Key)
	s.Require().NoError(err)
	s.Require().NotNil(stored.LastTradeIn)
	s.Equal(s.app.MockClock.Now().UnixMilli(), *stored.LastTradeIn)
}

// Test: the generator wired into the app is the one bootstrap uses
func (s *IntegrationSuite) TestIdentityMatchesStoredPlayers() {
	result, err := s.app.PlayerService.Bootstrap(s.ctx, 7, false)
	s.Require().NoError(err)

	for i, p := range result.Players {
		id, err := s.app.Generator.Derive(i)
		s.Require().NoError(err)
		s.Equal(id.Key, p.Key)
		s.Equal(id.Username, p.Username)
		s.Equal(id.Ranch, p.Ranch)
	}
	s.Equal(TestSalt, s.app.Generator.Salt())
}

// Test: records handed to storage never leak the token unless asked
func (s *IntegrationSuite) TestRecordRedaction() {
	result, err := s.app.PlayerService.Bootstrap(s.ctx, 1, false)
	s.Require().NoError(err)

	p := result.Players[0]
	token := "session-token"
	p.Token = &token
	_, err = s.app.PlayerService.Update(s.ctx, p)
	s.Require().NoError(err)

	stored, err := s.app.PlayerService.Get(s.ctx, p.Key)
	s.Require().NoError(err)
	s.Nil(stored.ToRecord(false).Token)
	s.Require().NotNil(stored.ToRecord(true).Token)
	s.Equal(model.RanchSolar, stored.Ranch)
}

// Test: the service refuses renames, so the username index never goes stale
func (s *IntegrationSuite) TestUpdateRejectsRename() {
	result, err := s.app.PlayerService.Bootstrap(s.ctx, 2, false)
	s.Require().NoError(err)

	p := result.Players[0]
	original := p.Username
	p.Username = result.Players[1].Username + "-x"
	_, err = s.app.PlayerService.Update(s.ctx, p)
	s.ErrorIs(err, model.ErrUsernameImmutable)

	found, err := s.app.PlayerService.GetByUsername(s.ctx, original)
	s.Require().NoError(err)
	s.Equal(p.Key, found.Key)
}
