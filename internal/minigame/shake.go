package minigame

import (
	"math"

	"github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"
)

// ShakeRound scores a point for every accelerometer sample whose summed
// magnitude exceeds ShakeThreshold. Readings include gravity, so a device
// at rest sits around 9.8 and never scores.
type ShakeRound struct {
	round
}

// NewShakeRound creates a shake round with the default window
func NewShakeRound(clk clock.Clock) *ShakeRound {
	return &ShakeRound{round: newRound(clk, KindShake, DefaultWindow)}
}

// Sample feeds one acceleration reading and reports whether it scored
func (r *ShakeRound) Sample(x, y, z float64) bool {
	if !r.open() || math.Abs(x+y+z) <= ShakeThreshold {
		return false
	}
	r.score++
	return true
}
