package memory

import (
	"context"
	"sync"

	"github.com/rumbledev/restaurant-rumble/internal/model"
	"github.com/rumbledev/restaurant-rumble/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players        map[model.PlayerID]*model.Player
	sessions       map[model.SessionID]*model.Session
	shortCodeIndex map[model.ShortCode][]model.SessionID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:        make(map[model.PlayerID]*model.Player),
		sessions:       make(map[model.SessionID]*model.Session),
		shortCodeIndex: make(map[model.ShortCode][]model.SessionID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *player
	s.players[player.ID] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

// Session operations

func (s *Storage) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.Version = 1
	s.sessions[session.ID] = copySession(session)
	if session.ShortCode != "" {
		s.shortCodeIndex[session.ShortCode] = append(s.shortCodeIndex[session.ShortCode], session.ID)
	}
	return nil
}

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[session.ID]
	if !ok {
		return model.ErrSessionNotFound
	}
	if stored.Version != session.Version {
		return model.ErrVersionConflict
	}

	session.Version++
	s.sessions[session.ID] = copySession(session)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copySession(session), nil
}

func (s *Storage) GetSessionsByShortCode(ctx context.Context, code model.ShortCode) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.shortCodeIndex[code]
	sessions := make([]*model.Session, 0, len(ids))
	for _, id := range ids {
		if session, ok := s.sessions[id]; ok {
			sessions = append(sessions, copySession(session))
		}
	}
	return sessions, nil
}

func (s *Storage) ShortCodeExists(ctx context.Context, code model.ShortCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shortCodeIndex[code]) > 0, nil
}

// copySession deep-copies a session so callers never share roster slices
// with the stored document
func copySession(session *model.Session) *model.Session {
	c := *session
	c.Players = make([]model.Entrant, len(session.Players))
	copy(c.Players, session.Players)
	return &c
}
