package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents an identity known to the system.
// Identity itself comes from outside (the identity service hands out
// ids and display names); gameplay state lives on the session roster.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for players without a registered account
	CreatedAt   time.Time
}
