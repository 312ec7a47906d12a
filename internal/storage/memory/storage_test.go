package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rumbledev/restaurant-rumble/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newSession(id, shortCode string) *model.Session {
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	return &model.Session{
		ID:        model.SessionID(id),
		ShortCode: model.ShortCode(shortCode),
		CreatorID: "creator-1",
		Status:    model.StatusJoining,
		Players:   []model.Entrant{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     true,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.DisplayName, got.DisplayName)
	s.True(got.IsGuest)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Session tests

func (s *StorageSuite) TestCreateAndGetSession() {
	session := s.newSession("sess-1", "ABC123")

	err := s.storage.CreateSession(s.ctx, session)
	s.Require().NoError(err)
	s.Equal(int64(1), session.Version)

	got, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(model.ShortCode("ABC123"), got.ShortCode)
	s.Equal(model.StatusJoining, got.Status)
	s.Equal(int64(1), got.Version)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "missing")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveSessionBumpsVersion() {
	session := s.newSession("sess-1", "ABC123")
	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	session.Status = model.StatusPlaying
	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)
	s.Equal(int64(2), session.Version)

	got, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(model.StatusPlaying, got.Status)
	s.Equal(int64(2), got.Version)
}

func (s *StorageSuite) TestSaveSessionVersionConflict() {
	session := s.newSession("sess-1", "ABC123")
	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	// A concurrent writer saves from the same snapshot first
	stale, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	stale.Status = model.StatusPlaying
	err = s.storage.SaveSession(s.ctx, stale)
	s.ErrorIs(err, model.ErrVersionConflict)
}

func (s *StorageSuite) TestSaveSessionMissing() {
	session := s.newSession("sess-1", "ABC123")
	err := s.storage.SaveSession(s.ctx, session)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestGetSessionReturnsCopy() {
	session := s.newSession("sess-1", "ABC123")
	session.Players = []model.Entrant{{PlayerID: "p1", RestaurantName: "Pasta Place"}}
	s.Require().NoError(s.storage.CreateSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	got.Players[0].Score = 99

	again, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(0, again.Players[0].Score)
}

// Short code tests

func (s *StorageSuite) TestShortCodeExists() {
	exists, err := s.storage.ShortCodeExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("sess-1", "ABC123")))

	exists, err = s.storage.ShortCodeExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestGetSessionsByShortCodeMultiMatch() {
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("sess-1", "ABC123")))
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("sess-2", "ABC123")))
	s.Require().NoError(s.storage.CreateSession(s.ctx, s.newSession("sess-3", "XYZ789")))

	sessions, err := s.storage.GetSessionsByShortCode(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(sessions, 2)
}

func (s *StorageSuite) TestGetSessionsByShortCodeEmpty() {
	sessions, err := s.storage.GetSessionsByShortCode(s.ctx, "NOPE00")
	s.Require().NoError(err)
	s.Empty(sessions)
}
