package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/rumbledev/restaurant-rumble/internal/model"
)

// Event names sent to session clients
const (
	EventSessionUpdate = "session-update"
	EventGameStarted   = "game-started"
	EventScoreUpdate   = "score-update"
	EventGameFinished  = "game-finished"
)

// Broadcaster pushes session state changes to SSE clients as JSON payloads
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// entrantPayload is the wire shape of a roster entry
type entrantPayload struct {
	PlayerID       string `json:"player_id"`
	RestaurantName string `json:"restaurant_name"`
	Score          int    `json:"score"`
	IsReady        bool   `json:"is_ready"`
}

// sessionPayload is the wire shape of a session snapshot
type sessionPayload struct {
	ID        string           `json:"id"`
	ShortCode string           `json:"short_code"`
	Status    string           `json:"status"`
	Players   []entrantPayload `json:"players"`
	Winner    string           `json:"winner,omitempty"`
}

// scorePayload accompanies a score-update event
type scorePayload struct {
	PlayerID       string `json:"player_id"`
	RestaurantName string `json:"restaurant_name"`
	Score          int    `json:"score"`
}

func sessionPayloadFromModel(s *model.Session) sessionPayload {
	players := make([]entrantPayload, len(s.Players))
	for i, e := range s.Players {
		players[i] = entrantPayload{
			PlayerID:       string(e.PlayerID),
			RestaurantName: e.RestaurantName,
			Score:          e.Score,
			IsReady:        e.IsReady,
		}
	}
	return sessionPayload{
		ID:        string(s.ID),
		ShortCode: string(s.ShortCode),
		Status:    string(s.Status),
		Players:   players,
		Winner:    s.Winner,
	}
}

// broadcastJSON marshals the payload and sends it on the session's hub.
// Sessions with no connected clients are skipped.
func (b *Broadcaster) broadcastJSON(sessionID model.SessionID, eventName string, payload any) {
	hub := b.hubManager.GetHub(sessionID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to marshal payload",
			slog.String("session_id", string(sessionID)),
			slog.String("event", eventName),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(eventName, string(data))
}

// BroadcastSessionUpdate sends a full session snapshot, used when the
// roster or ready set changes
func (b *Broadcaster) BroadcastSessionUpdate(session *model.Session) {
	b.broadcastJSON(session.ID, EventSessionUpdate, sessionPayloadFromModel(session))
}

// BroadcastGameStarted announces the joining-to-playing transition
func (b *Broadcaster) BroadcastGameStarted(session *model.Session) {
	b.broadcastJSON(session.ID, EventGameStarted, sessionPayloadFromModel(session))
}

// BroadcastScoreUpdate sends one entrant's new cumulative score
func (b *Broadcaster) BroadcastScoreUpdate(session *model.Session, playerID model.PlayerID) {
	entrant := session.GetEntrant(playerID)
	if entrant == nil {
		return
	}
	b.broadcastJSON(session.ID, EventScoreUpdate, scorePayload{
		PlayerID:       string(entrant.PlayerID),
		RestaurantName: entrant.RestaurantName,
		Score:          entrant.Score,
	})
}

// BroadcastGameFinished announces the final snapshot with the winner set
func (b *Broadcaster) BroadcastGameFinished(session *model.Session) {
	b.broadcastJSON(session.ID, EventGameFinished, sessionPayloadFromModel(session))
}
