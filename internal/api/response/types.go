package response

import (
	"time"

	"github.com/rumbledev/restaurant-rumble/internal/model"
	"github.com/rumbledev/restaurant-rumble/internal/services/identity"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// AuthResponseFromToken creates an AuthResponse from an issued token
func AuthResponseFromToken(t *identity.Token) AuthResponse {
	return AuthResponse{
		Player: PlayerFromModel(&t.Player),
		Token:  t.Value,
	}
}

// Entrant represents a roster entry in API responses
type Entrant struct {
	PlayerID       string    `json:"player_id"`
	RestaurantName string    `json:"restaurant_name"`
	Score          int       `json:"score"`
	IsReady        bool      `json:"is_ready"`
	JoinedAt       time.Time `json:"joined_at"`
}

// EntrantFromModel converts model.Entrant
func EntrantFromModel(e model.Entrant) Entrant {
	return Entrant{
		PlayerID:       string(e.PlayerID),
		RestaurantName: e.RestaurantName,
		Score:          e.Score,
		IsReady:        e.IsReady,
		JoinedAt:       e.JoinedAt,
	}
}

// Session represents a game session in API responses
type Session struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"short_code"`
	CreatorID string    `json:"creator_id"`
	Status    string    `json:"status"`
	Players   []Entrant `json:"players"`
	Winner    *string   `json:"winner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	players := make([]Entrant, len(s.Players))
	for i, e := range s.Players {
		players[i] = EntrantFromModel(e)
	}

	var winner *string
	if s.Winner != "" {
		w := s.Winner
		winner = &w
	}

	return Session{
		ID:        string(s.ID),
		ShortCode: string(s.ShortCode),
		CreatorID: string(s.CreatorID),
		Status:    string(s.Status),
		Players:   players,
		Winner:    winner,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// SessionList wraps the sessions matching a short code lookup
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// SessionListFromModels converts a slice of sessions
func SessionListFromModels(sessions []*model.Session) SessionList {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = SessionFromModel(s)
	}
	return SessionList{Sessions: out}
}

// Leaderboard is the ranked standings of a session
type Leaderboard struct {
	Entries []Entrant `json:"entries"`
}

// LeaderboardFromModel converts the ranked roster
func LeaderboardFromModel(entries []model.Entrant) Leaderboard {
	out := make([]Entrant, len(entries))
	for i, e := range entries {
		out[i] = EntrantFromModel(e)
	}
	return Leaderboard{Entries: out}
}
