package identity

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"
	"github.com/rumbledev/restaurant-rumble/internal/model"
	"github.com/rumbledev/restaurant-rumble/internal/storage"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Token is a bearer credential tying requests to a player
type Token struct {
	Value     string
	PlayerID  model.PlayerID
	Player    model.Player
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service is the identity provider: it mints guest players with a stable
// id and display name, and validates the bearer tokens that carry them.
// The game core never talks to this package; it only sees player ids.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu     sync.RWMutex
	tokens map[string]*Token

	tokenDuration time.Duration
}

// Config holds configuration for the identity service
type Config struct {
	TokenDuration time.Duration
}

// DefaultConfig returns default identity configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// New creates a new identity Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		tokens:        make(map[string]*Token),
		tokenDuration: cfg.TokenDuration,
	}
}

// CreateGuest creates an anonymous player and a bearer token for it
func (s *Service) CreateGuest(ctx context.Context, displayName string) (*Token, error) {
	now := s.clock.Now()

	player := &model.Player{
		ID:          model.PlayerID(uuid.NewString()),
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	return s.createToken(player), nil
}

// ValidateToken checks a bearer token and returns its record
func (s *Service) ValidateToken(value string) (*Token, error) {
	s.mu.RLock()
	token, ok := s.tokens[value]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidToken
	}

	if s.clock.Now().After(token.ExpiresAt) {
		s.mu.Lock()
		delete(s.tokens, value)
		s.mu.Unlock()
		return nil, ErrInvalidToken
	}

	return token, nil
}

// GetPlayer returns the player behind a bearer token
func (s *Service) GetPlayer(value string) (*model.Player, error) {
	token, err := s.ValidateToken(value)
	if err != nil {
		return nil, err
	}
	return &token.Player, nil
}

// InvalidateToken removes a token
func (s *Service) InvalidateToken(value string) {
	s.mu.Lock()
	delete(s.tokens, value)
	s.mu.Unlock()
}

// CleanExpiredTokens removes expired tokens (call periodically)
func (s *Service) CleanExpiredTokens() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for value, token := range s.tokens {
		if now.After(token.ExpiresAt) {
			delete(s.tokens, value)
		}
	}
}

func (s *Service) createToken(player *model.Player) *Token {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	now := s.clock.Now()

	token := &Token{
		Value:     "tok_" + base64.RawURLEncoding.EncodeToString(b),
		PlayerID:  player.ID,
		Player:    *player,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenDuration),
	}

	s.mu.Lock()
	s.tokens[token.Value] = token
	s.mu.Unlock()

	return token
}
