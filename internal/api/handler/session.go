package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/rumbledev/restaurant-rumble/internal/api/middleware"
	"github.com/rumbledev/restaurant-rumble/internal/api/request"
	"github.com/rumbledev/restaurant-rumble/internal/api/response"
	"github.com/rumbledev/restaurant-rumble/internal/model"
	"github.com/rumbledev/restaurant-rumble/internal/services/session"
	"github.com/rumbledev/restaurant-rumble/internal/sse"
)

const qrImageSize = 256

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	sessionController *session.Controller
	hubManager        *sse.HubManager
	broadcaster       *sse.Broadcaster
	publicBaseURL     string
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionController *session.Controller, hubManager *sse.HubManager, publicBaseURL string, logger *slog.Logger) *SessionHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &SessionHandler{
		sessionController: sessionController,
		hubManager:        hubManager,
		broadcaster:       broadcaster,
		publicBaseURL:     publicBaseURL,
	}
}

// getBroadcaster returns the broadcaster if available
func (h *SessionHandler) getBroadcaster() *sse.Broadcaster {
	return h.broadcaster
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	sess, err := h.sessionController.Create(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(sess))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessionController.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Find handles GET /api/v1/sessions/code/{code}
// Short codes can collide, so all matches are returned
func (h *SessionHandler) Find(w http.ResponseWriter, r *http.Request) {
	code := model.ShortCode(mux.Vars(r)["code"])

	sessions, err := h.sessionController.GetByShortCode(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionListFromModels(sessions))
}

// Join handles POST /api/v1/sessions/{id}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sess, err := h.sessionController.Join(r.Context(), id, player.ID, req.RestaurantName)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.BroadcastSessionUpdate(sess)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// SetReady handles POST /api/v1/sessions/{id}/ready
func (h *SessionHandler) SetReady(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.SetReadyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sess, err := h.sessionController.SetReady(r.Context(), id, player.ID, req.Ready)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.BroadcastSessionUpdate(sess)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Start handles POST /api/v1/sessions/{id}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessionController.Start(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.BroadcastGameStarted(sess)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Score handles POST /api/v1/sessions/{id}/score
func (h *SessionHandler) Score(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sess, err := h.sessionController.UpdateScore(r.Context(), id, player.ID, req.Increment)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.BroadcastScoreUpdate(sess, player.ID)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Finish handles POST /api/v1/sessions/{id}/finish
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessionController.Finish(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.getBroadcaster(); b != nil {
		b.BroadcastGameFinished(sess)
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess))
}

// Leaderboard handles GET /api/v1/sessions/{id}/leaderboard
func (h *SessionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	entries, err := h.sessionController.Leaderboard(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// Events handles GET /api/v1/sessions/{id}/events
// Streams session state changes over SSE until the client disconnects
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	// Verify the session exists before holding a stream open
	if _, err := h.sessionController.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, player.ID)
}

// ShareQR handles GET /api/v1/sessions/{id}/qr
// Returns a PNG QR code encoding the join link for the session's short code
func (h *SessionHandler) ShareQR(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessionController.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	joinURL := fmt.Sprintf("%s/join/%s", h.publicBaseURL, sess.ShortCode)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrImageSize)
	if err != nil {
		WriteError(w, NewInternalError())
		return
	}

	response.PNG(w, http.StatusOK, png)
}
