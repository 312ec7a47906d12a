package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rumbledev/restaurant-rumble/internal/dependencies/mocks"
	"github.com/rumbledev/restaurant-rumble/internal/model"
	"github.com/rumbledev/restaurant-rumble/internal/storage/memory"
	"github.com/rumbledev/restaurant-rumble/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.controller = NewController(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

// createReadySession builds a session in the playing state with the
// given restaurants, all joined and readied
func (s *ControllerSuite) createPlayingSession(restaurants ...string) *model.Session {
	s.random.QueueString("ABC123")
	session, err := s.controller.Create(s.ctx, "creator-1")
	s.Require().NoError(err)

	for i, name := range restaurants {
		playerID := model.PlayerID([]string{"p1", "p2", "p3", "p4"}[i])
		_, err = s.controller.Join(s.ctx, session.ID, playerID, name)
		s.Require().NoError(err)
		_, err = s.controller.SetReady(s.ctx, session.ID, playerID, true)
		s.Require().NoError(err)
	}

	started, err := s.controller.Start(s.ctx, session.ID)
	s.Require().NoError(err)
	return started
}

// Create tests

func (s *ControllerSuite) TestCreateSucceeds() {
	s.random.QueueString("ABC123")

	session, err := s.controller.Create(s.ctx, "creator-1")
	s.Require().NoError(err)

	s.Equal(model.StatusJoining, session.Status)
	s.Equal(model.ShortCode("ABC123"), session.ShortCode)
	s.Equal(model.PlayerID("creator-1"), session.CreatorID)
	s.Empty(session.Players)
	s.Empty(session.Winner)
}

func (s *ControllerSuite) TestCreateIsPersisted() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")

	got, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.StatusJoining, got.Status)
	s.Empty(got.Players)
	s.Empty(got.Winner)
}

func (s *ControllerSuite) TestCreateRetriesShortCodeOnCollision() {
	s.random.QueueString("ABC123")
	first, err := s.controller.Create(s.ctx, "creator-1")
	s.Require().NoError(err)

	s.random.QueueString("ABC123", "XYZ789")
	second, err := s.controller.Create(s.ctx, "creator-2")
	s.Require().NoError(err)

	s.Equal(model.ShortCode("ABC123"), first.ShortCode)
	s.Equal(model.ShortCode("XYZ789"), second.ShortCode)
}

func (s *ControllerSuite) TestGetByShortCode() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")

	matches, err := s.controller.GetByShortCode(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal(session.ID, matches[0].ID)
}

func (s *ControllerSuite) TestGetMissingSession() {
	_, err := s.controller.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Join tests

func (s *ControllerSuite) TestJoinAppendsEntrant() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")

	updated, err := s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")
	s.Require().NoError(err)

	s.Require().Len(updated.Players, 1)
	entrant := updated.Players[0]
	s.Equal(model.PlayerID("p1"), entrant.PlayerID)
	s.Equal("Pasta Place", entrant.RestaurantName)
	s.Equal(0, entrant.Score)
	s.False(entrant.IsReady)
}

func (s *ControllerSuite) TestJoinPreservesRosterOrder() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")

	_, _ = s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")
	_, _ = s.controller.Join(s.ctx, session.ID, "p2", "Sushi Spot")
	updated, err := s.controller.Join(s.ctx, session.ID, "p3", "Taco Town")
	s.Require().NoError(err)

	s.Equal("Pasta Place", updated.Players[0].RestaurantName)
	s.Equal("Sushi Spot", updated.Players[1].RestaurantName)
	s.Equal("Taco Town", updated.Players[2].RestaurantName)
}

func (s *ControllerSuite) TestJoinMissingSession() {
	_, err := s.controller.Join(s.ctx, "missing", "p1", "Pasta Place")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestJoinRequiresRestaurantName() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")

	_, err := s.controller.Join(s.ctx, session.ID, "p1", "   ")
	s.ErrorIs(err, model.ErrRestaurantNameRequired)
}

func (s *ControllerSuite) TestJoinRejectsDuplicatePlayer() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")

	_, err := s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place Again")
	s.ErrorIs(err, model.ErrAlreadyJoined)

	got, _ := s.controller.Get(s.ctx, session.ID)
	s.Len(got.Players, 1)
}

func (s *ControllerSuite) TestJoinAfterStartFailsAndDoesNotMutate() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")

	_, err := s.controller.Join(s.ctx, session.ID, "p3", "Taco Town")
	s.ErrorIs(err, model.ErrSessionNotJoining)

	got, _ := s.controller.Get(s.ctx, session.ID)
	s.Len(got.Players, 2)
}

// SetReady tests

func (s *ControllerSuite) TestSetReadyFlipsFlag() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")
	_, _ = s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")

	updated, err := s.controller.SetReady(s.ctx, session.ID, "p1", true)
	s.Require().NoError(err)
	s.True(updated.Players[0].IsReady)

	updated, err = s.controller.SetReady(s.ctx, session.ID, "p1", false)
	s.Require().NoError(err)
	s.False(updated.Players[0].IsReady)
}

func (s *ControllerSuite) TestSetReadyUnknownPlayerIsNoOp() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")
	_, _ = s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")

	updated, err := s.controller.SetReady(s.ctx, session.ID, "ghost", true)
	s.Require().NoError(err)
	s.False(updated.Players[0].IsReady)
}

func (s *ControllerSuite) TestSetReadyOutsideJoining() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")

	_, err := s.controller.SetReady(s.ctx, session.ID, "p1", false)
	s.ErrorIs(err, model.ErrSessionNotJoining)
}

// Start tests

func (s *ControllerSuite) TestStartRequiresTwoPlayers() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")
	_, _ = s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")
	_, _ = s.controller.SetReady(s.ctx, session.ID, "p1", true)

	_, err := s.controller.Start(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrNotEnoughPlayers)

	got, _ := s.controller.Get(s.ctx, session.ID)
	s.Equal(model.StatusJoining, got.Status)
}

func (s *ControllerSuite) TestStartRequiresAllReady() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")
	_, _ = s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")
	_, _ = s.controller.Join(s.ctx, session.ID, "p2", "Sushi Spot")
	_, _ = s.controller.SetReady(s.ctx, session.ID, "p1", true)

	_, err := s.controller.Start(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrPlayersNotReady)
}

func (s *ControllerSuite) TestStartSucceeds() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")
	s.Equal(model.StatusPlaying, session.Status)
}

func (s *ControllerSuite) TestStartTwiceFails() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")

	_, err := s.controller.Start(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotJoining)
}

// UpdateScore tests

func (s *ControllerSuite) TestUpdateScoreAccumulates() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")

	_, err := s.controller.UpdateScore(s.ctx, session.ID, "p1", 7)
	s.Require().NoError(err)
	_, err = s.controller.UpdateScore(s.ctx, session.ID, "p1", 5)
	s.Require().NoError(err)

	got, _ := s.controller.Get(s.ctx, session.ID)
	s.Equal(12, got.GetEntrant("p1").Score)
	s.Equal(0, got.GetEntrant("p2").Score)
}

func (s *ControllerSuite) TestUpdateScoreZeroIncrementAllowed() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")

	_, err := s.controller.UpdateScore(s.ctx, session.ID, "p1", 0)
	s.Require().NoError(err)
}

func (s *ControllerSuite) TestUpdateScoreRejectsNegative() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")

	_, err := s.controller.UpdateScore(s.ctx, session.ID, "p1", -1)
	s.ErrorIs(err, model.ErrNegativeIncrement)
}

func (s *ControllerSuite) TestUpdateScoreBeforeStart() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")
	_, _ = s.controller.Join(s.ctx, session.ID, "p1", "Pasta Place")

	_, err := s.controller.UpdateScore(s.ctx, session.ID, "p1", 3)
	s.ErrorIs(err, model.ErrSessionNotPlaying)
}

func (s *ControllerSuite) TestUpdateScoreAfterFinish() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")
	_, err := s.controller.Finish(s.ctx, session.ID)
	s.Require().NoError(err)

	_, err = s.controller.UpdateScore(s.ctx, session.ID, "p1", 3)
	s.ErrorIs(err, model.ErrSessionNotPlaying)
}

func (s *ControllerSuite) TestUpdateScoreUnknownPlayerIsNoOp() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")

	_, err := s.controller.UpdateScore(s.ctx, session.ID, "ghost", 10)
	s.Require().NoError(err)

	got, _ := s.controller.Get(s.ctx, session.ID)
	s.Equal(0, got.GetEntrant("p1").Score)
	s.Equal(0, got.GetEntrant("p2").Score)
}

// Finish tests

func (s *ControllerSuite) TestFinishPicksHighestScore() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p1", 7)
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p2", 3)

	finished, err := s.controller.Finish(s.ctx, session.ID)
	s.Require().NoError(err)

	s.Equal(model.StatusFinished, finished.Status)
	s.Equal("Pasta Place", finished.Winner)
}

func (s *ControllerSuite) TestFinishTieBreaksToEarliestRosterPosition() {
	session := s.createPlayingSession("Alpha Diner", "Bravo Bistro", "Charlie Cafe")
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p1", 5)
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p2", 9)
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p3", 9)

	finished, err := s.controller.Finish(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal("Bravo Bistro", finished.Winner)
}

func (s *ControllerSuite) TestFinishBeforeStart() {
	s.random.QueueString("ABC123")
	session, _ := s.controller.Create(s.ctx, "creator-1")

	_, err := s.controller.Finish(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotPlaying)
}

func (s *ControllerSuite) TestFinishTwiceFails() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")
	_, err := s.controller.Finish(s.ctx, session.ID)
	s.Require().NoError(err)

	_, err = s.controller.Finish(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotPlaying)
}

func (s *ControllerSuite) TestFinishFreezesState() {
	session := s.createPlayingSession("Pasta Place", "Sushi Spot")
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p1", 4)
	finished, _ := s.controller.Finish(s.ctx, session.ID)

	got, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(finished.Winner, got.Winner)
	s.Equal(model.StatusFinished, got.Status)
	s.Len(got.Players, 2)
}

// Leaderboard tests

func (s *ControllerSuite) TestLeaderboardOrdersByScoreDescending() {
	session := s.createPlayingSession("Alpha Diner", "Bravo Bistro", "Charlie Cafe")
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p1", 2)
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p2", 9)
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p3", 5)

	board, err := s.controller.Leaderboard(s.ctx, session.ID)
	s.Require().NoError(err)

	s.Equal("Bravo Bistro", board[0].RestaurantName)
	s.Equal("Charlie Cafe", board[1].RestaurantName)
	s.Equal("Alpha Diner", board[2].RestaurantName)
}

func (s *ControllerSuite) TestLeaderboardStableForTies() {
	session := s.createPlayingSession("Alpha Diner", "Bravo Bistro", "Charlie Cafe")
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p2", 9)
	_, _ = s.controller.UpdateScore(s.ctx, session.ID, "p3", 9)

	board, err := s.controller.Leaderboard(s.ctx, session.ID)
	s.Require().NoError(err)

	s.Equal("Bravo Bistro", board[0].RestaurantName)
	s.Equal("Charlie Cafe", board[1].RestaurantName)
	s.Equal("Alpha Diner", board[2].RestaurantName)
}
