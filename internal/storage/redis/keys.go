package redis

import (
	"fmt"

	"github.com/rumbledev/restaurant-rumble/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "rumble"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// shortCodeIndexKey returns the Redis key for the SET of session ids
// sharing a short code
func shortCodeIndexKey(code model.ShortCode) string {
	return fmt.Sprintf("%s:idx:short_code:%s", keyPrefix, code)
}
