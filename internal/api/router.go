package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rumbledev/restaurant-rumble/internal/api/handler"
	"github.com/rumbledev/restaurant-rumble/internal/api/middleware"
	basemiddleware "github.com/rumbledev/restaurant-rumble/internal/middleware"
	"github.com/rumbledev/restaurant-rumble/internal/services/identity"
	"github.com/rumbledev/restaurant-rumble/internal/services/session"
	"github.com/rumbledev/restaurant-rumble/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	IdentityService   *identity.Service
	SessionController *session.Controller
	HubManager        *sse.HubManager
	PublicBaseURL     string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.HubManager, cfg.PublicBaseURL, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := basemiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating guests)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/code/{code}", sessionHandler.Find).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/ready", sessionHandler.SetReady).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/start", sessionHandler.Start).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/score", sessionHandler.Score).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/finish", sessionHandler.Finish).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/leaderboard", sessionHandler.Leaderboard).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/events", sessionHandler.Events).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}/qr", sessionHandler.ShareQR).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
