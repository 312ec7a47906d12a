package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"
	"github.com/rumbledev/restaurant-rumble/internal/dependencies/random"
	"github.com/rumbledev/restaurant-rumble/internal/model"
	"github.com/rumbledev/restaurant-rumble/internal/storage"
)

const (
	// ShortCodeLength is the length of generated short codes
	ShortCodeLength = 6
	// ShortCodeAlphabet is the characters used in short codes
	ShortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// MinPlayers is the smallest roster that can start a rumble
	MinPlayers = 2
)

// Controller manages the session state machine: the roster, the
// joining -> playing -> finished transitions, and the score fold that
// picks a winning restaurant.
//
// Every operation is a single read-modify-write against one session
// document. There is no retry: a concurrent writer surfaces as
// model.ErrVersionConflict and the caller re-reads.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Create creates a new session in the joining state with an empty roster
func (c *Controller) Create(ctx context.Context, creatorID model.PlayerID) (*model.Session, error) {
	now := c.clock.Now()

	// Generate an unused short code
	var code model.ShortCode
	for {
		code = model.ShortCode(c.random.String(ShortCodeLength, ShortCodeAlphabet))
		exists, err := c.storage.ShortCodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := &model.Session{
		ID:        model.SessionID(uuid.NewString()),
		ShortCode: code,
		CreatorID: creatorID,
		Status:    model.StatusJoining,
		Players:   []model.Entrant{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("short_code", string(code)),
		slog.String("creator_id", string(creatorID)),
	)

	return session, nil
}

// Get retrieves a session by id
func (c *Controller) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// GetByShortCode retrieves all sessions sharing a short code.
// Codes are not primary keys; callers disambiguate by creation time.
func (c *Controller) GetByShortCode(ctx context.Context, code model.ShortCode) ([]*model.Session, error) {
	return c.storage.GetSessionsByShortCode(ctx, code)
}

// Join appends a restaurant to the roster of a joining session
func (c *Controller) Join(ctx context.Context, id model.SessionID, playerID model.PlayerID, restaurantName string) (*model.Session, error) {
	if strings.TrimSpace(restaurantName) == "" {
		return nil, model.ErrRestaurantNameRequired
	}

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status != model.StatusJoining {
		return nil, model.ErrSessionNotJoining
	}
	if session.GetEntrant(playerID) != nil {
		return nil, model.ErrAlreadyJoined
	}

	session.Players = append(session.Players, model.Entrant{
		PlayerID:       playerID,
		RestaurantName: restaurantName,
		Score:          0,
		IsReady:        false,
		JoinedAt:       c.clock.Now(),
	})
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("player joined session",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.String("restaurant", restaurantName),
		slog.Int("roster_size", len(session.Players)),
	)

	return session, nil
}

// SetReady updates a roster entry's ready flag. An unmatched playerID is
// a silent no-op; only the session status gates the operation.
func (c *Controller) SetReady(ctx context.Context, id model.SessionID, playerID model.PlayerID, ready bool) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status != model.StatusJoining {
		return nil, model.ErrSessionNotJoining
	}

	if entrant := session.GetEntrant(playerID); entrant != nil {
		entrant.IsReady = ready
	}
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Start transitions a session from joining to playing. Requires at least
// MinPlayers on the roster and every entrant ready.
func (c *Controller) Start(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status != model.StatusJoining {
		return nil, model.ErrSessionNotJoining
	}
	if len(session.Players) < MinPlayers {
		return nil, model.ErrNotEnoughPlayers
	}
	if !session.AllReady() {
		return nil, model.ErrPlayersNotReady
	}

	session.Status = model.StatusPlaying
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session started",
		slog.String("session_id", string(id)),
		slog.Int("player_count", len(session.Players)),
	)

	return session, nil
}

// UpdateScore adds a mini-game round's increment to a roster entry's
// score. An unmatched playerID is a silent no-op. Negative increments are
// rejected: scores only move up.
func (c *Controller) UpdateScore(ctx context.Context, id model.SessionID, playerID model.PlayerID, increment int) (*model.Session, error) {
	if increment < 0 {
		return nil, model.ErrNegativeIncrement
	}

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status != model.StatusPlaying {
		return nil, model.ErrSessionNotPlaying
	}

	if entrant := session.GetEntrant(playerID); entrant != nil {
		entrant.Score += increment
	}
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("score updated",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Int("increment", increment),
	)

	return session, nil
}

// Finish transitions a session from playing to finished and records the
// winning restaurant: the highest score, ties broken by earliest roster
// position.
func (c *Controller) Finish(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status != model.StatusPlaying {
		return nil, model.ErrSessionNotPlaying
	}

	winner, ok := session.WinningRestaurant()
	if !ok {
		return nil, model.ErrEmptyRoster
	}

	session.Status = model.StatusFinished
	session.Winner = winner
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session finished",
		slog.String("session_id", string(id)),
		slog.String("winner", winner),
	)

	return session, nil
}

// Leaderboard returns the roster ordered by score descending, stable in
// roster order for ties
func (c *Controller) Leaderboard(ctx context.Context, id model.SessionID) ([]model.Entrant, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.Leaderboard(), nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, creatorID model.PlayerID) (*model.Session, error)
	Get(ctx context.Context, id model.SessionID) (*model.Session, error)
	GetByShortCode(ctx context.Context, code model.ShortCode) ([]*model.Session, error)
	Join(ctx context.Context, id model.SessionID, playerID model.PlayerID, restaurantName string) (*model.Session, error)
	SetReady(ctx context.Context, id model.SessionID, playerID model.PlayerID, ready bool) (*model.Session, error)
	Start(ctx context.Context, id model.SessionID) (*model.Session, error)
	UpdateScore(ctx context.Context, id model.SessionID, playerID model.PlayerID, increment int) (*model.Session, error)
	Finish(ctx context.Context, id model.SessionID) (*model.Session, error)
	Leaderboard(ctx context.Context, id model.SessionID) ([]model.Entrant, error)
}

var _ ControllerInterface = (*Controller)(nil)
