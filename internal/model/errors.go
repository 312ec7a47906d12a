package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session lookup errors
	ErrSessionNotFound = errors.New("session not found")

	// Transition errors
	ErrSessionNotJoining = errors.New("session is not accepting players")
	ErrSessionNotPlaying = errors.New("session is not in play")

	// Start preconditions
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrPlayersNotReady  = errors.New("not all players are ready")

	// Finish with nobody on the roster has no defined winner
	ErrEmptyRoster = errors.New("session has no players")

	// Roster and score validation
	ErrAlreadyJoined          = errors.New("player has already joined this session")
	ErrRestaurantNameRequired = errors.New("restaurant name is required")
	ErrNegativeIncrement      = errors.New("score increment must not be negative")

	// Storage errors
	ErrVersionConflict = errors.New("session was modified concurrently")
)
