package player

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/ranchgame/internal/model"
	"github.com/mcoot/ranchgame/internal/services/identity"
	"github.com/mcoot/ranchgame/internal/storage"
	"github.com/mcoot/ranchgame/internal/storage/memory"
	"github.com/mcoot/ranchgame/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = NewService(s.storage, identity.NewGenerator(""), DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// failingStorage fails every bootstrap with err
type failingStorage struct {
	storage.Storage
	err error
}

func (f *failingStorage) Bootstrap(ctx context.Context, gen storage.Generator, count int, force bool) ([]*model.Player, error) {
	return nil, f.err
}

// Bootstrap tests

func (s *ServiceSuite) TestBootstrapCreatesPlayers() {
	result, err := s.service.Bootstrap(s.ctx, 5, false)
	s.Require().NoError(err)
	s.False(result.AlreadyBootstrapped)
	s.Require().Len(result.Players, 5)

	first := result.Players[0]
	s.Equal("08fc419c6c862e017204aeb836c5897a", first.Key)
	s.Equal("original-mastiff", first.Username)
	s.Equal(model.RanchSolar, first.Ranch)
	s.Equal(0, first.Points)
	s.Empty(first.Medals)
	s.NotNil(first.ID)

	s.Equal(model.RanchLunar, result.Players[1].Ranch)
	s.Equal(model.RanchComet, result.Players[4].Ranch)
}

func (s *ServiceSuite) TestBootstrapTwiceIsNoOp() {
	_, err := s.service.Bootstrap(s.ctx, 5, false)
	s.Require().NoError(err)

	result, err := s.service.Bootstrap(s.ctx, 5, false)
	s.Require().NoError(err)
	s.True(result.AlreadyBootstrapped)
	s.Empty(result.Players)
}

func (s *ServiceSuite) TestBootstrapForceDoesNotFail() {
	first, err := s.service.Bootstrap(s.ctx, 5, false)
	s.Require().NoError(err)

	result, err := s.service.Bootstrap(s.ctx, 5, true)
	s.Require().NoError(err)
	s.False(result.AlreadyBootstrapped)
	s.Require().Len(result.Players, 5)
	for i := range first.Players {
		s.Equal(first.Players[i].ID, result.Players[i].ID)
	}
}

func (s *ServiceSuite) TestBootstrapRejectsInvalidCount() {
	for _, count := range []int{0, -4} {
		_, err := s.service.Bootstrap(s.ctx, count, false)
		s.ErrorIs(err, model.ErrInvalidCount)
	}

	top, err := s.storage.TopPlayers(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *ServiceSuite) TestBootstrapRejectsCountAboveLimit() {
	svc := NewService(s.storage, identity.NewGenerator(""), Config{MaxBootstrapCount: 4}, testutil.NopLogger())
	s.Equal(4, svc.MaxBootstrapCount())

	_, err := svc.Bootstrap(s.ctx, 5, false)
	s.ErrorIs(err, model.ErrInvalidCount)

	// Huge counts are refused before anything is allocated
	_, err = s.service.Bootstrap(s.ctx, math.MaxInt32, false)
	s.ErrorIs(err, model.ErrInvalidCount)

	top, err := s.storage.TopPlayers(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(top)

	result, err := svc.Bootstrap(s.ctx, 4, false)
	s.Require().NoError(err)
	s.Len(result.Players, 4)
}

func (s *ServiceSuite) TestDefaultLimitApplies() {
	svc := NewService(s.storage, identity.NewGenerator(""), Config{}, testutil.NopLogger())
	s.Equal(DefaultMaxBootstrapCount, svc.MaxBootstrapCount())
}

func (s *ServiceSuite) TestBootstrapPropagatesStorageErrors() {
	boom := errors.New("storage down")
	svc := NewService(&failingStorage{Storage: s.storage, err: boom}, identity.NewGenerator(""), DefaultConfig(), testutil.NopLogger())

	_, err := svc.Bootstrap(s.ctx, 3, false)
	s.ErrorIs(err, boom)
}

// Repository facade tests

func (s *ServiceSuite) TestCreateAndGet() {
	created, err := s.service.Create(s.ctx, model.NewPlayer("k1", "alice", model.RanchStellar))
	s.Require().NoError(err)

	got, err := s.service.Get(s.ctx, "k1")
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)

	byID, err := s.service.GetByID(s.ctx, *created.ID)
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)

	byName, err := s.service.GetByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("k1", byName.Key)
}

func (s *ServiceSuite) TestCreateRejectsExistingUsername() {
	_, err := s.service.Create(s.ctx, model.NewPlayer("k1", "alice", model.RanchSolar))
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, model.NewPlayer("k2", "alice", model.RanchSolar))
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *ServiceSuite) TestCreateRejectsExistingKey() {
	_, err := s.service.Create(s.ctx, model.NewPlayer("k1", "alice", model.RanchSolar))
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, model.NewPlayer("k1", "bob", model.RanchSolar))
	s.ErrorIs(err, model.ErrPlayerExists)
}

func (s *ServiceSuite) TestGetEmptyKey() {
	_, err := s.service.Get(s.ctx, "")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestUpdate() {
	created, err := s.service.Create(s.ctx, model.NewPlayer("k1", "alice", model.RanchSolar))
	s.Require().NoError(err)

	created.Points = 30
	_, err = s.service.Update(s.ctx, created)
	s.Require().NoError(err)

	got, err := s.service.Get(s.ctx, "k1")
	s.Require().NoError(err)
	s.Equal(30, got.Points)

	created.Points = -1
	_, err = s.service.Update(s.ctx, created)
	s.ErrorIs(err, model.ErrNegativePoints)
}

func (s *ServiceSuite) TestLeaderboardDefaultsLimit() {
	_, err := s.service.Bootstrap(s.ctx, DefaultLeaderboardLimit+5, false)
	s.Require().NoError(err)

	top, err := s.service.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(top, DefaultLeaderboardLimit)

	top, err = s.service.Leaderboard(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(top, 3)
}

func (s *ServiceSuite) TestIdentityMatchesBootstrap() {
	result, err := s.service.Bootstrap(s.ctx, 3, false)
	s.Require().NoError(err)

	id, err := s.service.Identity(2)
	s.Require().NoError(err)
	s.Equal(result.Players[2].Key, id.Key)
	s.Equal(result.Players[2].Username, id.Username)
}
