package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// ShortCode is a human-shareable code for finding a session out of band.
// Codes are 6 uppercase alphanumeric characters and are not part of the
// primary key; lookups by code may match more than one session.
type ShortCode string

// SessionStatus represents the lifecycle phase of a session.
// Transitions only move forward: joining -> playing -> finished.
type SessionStatus string

const (
	StatusJoining  SessionStatus = "joining"  // Roster open, waiting for ready
	StatusPlaying  SessionStatus = "playing"  // Mini-games running, scores accumulating
	StatusFinished SessionStatus = "finished" // Winner picked, state frozen
)

// Entrant is one restaurant on a session's roster.
// Score only moves up, and only while the session is playing.
type Entrant struct {
	PlayerID       PlayerID
	RestaurantName string
	Score          int
	IsReady        bool
	JoinedAt       time.Time
}

// Session is one instance of the game: a roster of entrants competing
// for the highest cumulative mini-game score.
type Session struct {
	ID        SessionID
	ShortCode ShortCode
	CreatorID PlayerID
	Status    SessionStatus
	Players   []Entrant // insertion order, never shrinks

	// Winner is the restaurant name of the highest scorer, set exactly
	// once when the session finishes. Empty before that.
	Winner string

	// Version is the optimistic-concurrency token; every successful
	// save increments it by one.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetEntrant returns the roster entry for the given player, or nil
func (s *Session) GetEntrant(playerID PlayerID) *Entrant {
	for i := range s.Players {
		if s.Players[i].PlayerID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

// AllReady returns true if every entrant has readied up
func (s *Session) AllReady() bool {
	for i := range s.Players {
		if !s.Players[i].IsReady {
			return false
		}
	}
	return true
}

// WinningRestaurant returns the restaurant name with the highest score.
// Ties resolve to the earliest roster position. The second return is
// false when the roster is empty.
func (s *Session) WinningRestaurant() (string, bool) {
	if len(s.Players) == 0 {
		return "", false
	}
	best := 0
	for i := 1; i < len(s.Players); i++ {
		if s.Players[i].Score > s.Players[best].Score {
			best = i
		}
	}
	return s.Players[best].RestaurantName, true
}

// Leaderboard returns the roster ordered by score descending.
// Equal scores keep their roster order, matching winner selection.
func (s *Session) Leaderboard() []Entrant {
	board := make([]Entrant, len(s.Players))
	copy(board, s.Players)
	// Insertion sort keeps the ordering stable for ties
	for i := 1; i < len(board); i++ {
		for j := i; j > 0 && board[j].Score > board[j-1].Score; j-- {
			board[j], board[j-1] = board[j-1], board[j]
		}
	}
	return board
}
