package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rumbledev/restaurant-rumble/internal/model"
	"github.com/rumbledev/restaurant-rumble/internal/services/identity"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodePlayerNotFound         = "PLAYER_NOT_FOUND"
	CodeSessionNotFound        = "SESSION_NOT_FOUND"
	CodeSessionNotJoining      = "SESSION_NOT_JOINING"
	CodeSessionNotPlaying      = "SESSION_NOT_PLAYING"
	CodeNotEnoughPlayers       = "NOT_ENOUGH_PLAYERS"
	CodePlayersNotReady        = "PLAYERS_NOT_READY"
	CodeEmptyRoster            = "EMPTY_ROSTER"
	CodeAlreadyJoined          = "ALREADY_JOINED"
	CodeRestaurantNameRequired = "RESTAURANT_NAME_REQUIRED"
	CodeNegativeIncrement      = "NEGATIVE_INCREMENT"
	CodeVersionConflict        = "VERSION_CONFLICT"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrSessionNotJoining):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotJoining, "Session is no longer accepting players"}}
	case errors.Is(err, model.ErrSessionNotPlaying):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotPlaying, "Session is not in play"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrPlayersNotReady):
		return &httpError{http.StatusConflict, APIError{CodePlayersNotReady, "All players must be ready to start"}}
	case errors.Is(err, model.ErrEmptyRoster):
		return &httpError{http.StatusConflict, APIError{CodeEmptyRoster, "Session has no players"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined this session"}}
	case errors.Is(err, model.ErrRestaurantNameRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeRestaurantNameRequired, "Restaurant name is required"}}
	case errors.Is(err, model.ErrNegativeIncrement):
		return &httpError{http.StatusBadRequest, APIError{CodeNegativeIncrement, "Score increment must not be negative"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeVersionConflict, "Session was updated concurrently, retry"}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
