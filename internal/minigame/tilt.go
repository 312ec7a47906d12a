package minigame

import "github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"

// TiltRound scores a point for every orientation sample whose forward
// tilt exceeds TiltThresholdDegrees. Samples are counted as delivered;
// there is no debounce between qualifying readings.
type TiltRound struct {
	round
}

// NewTiltRound creates a tilt round with the default window
func NewTiltRound(clk clock.Clock) *TiltRound {
	return &TiltRound{round: newRound(clk, KindTilt, DefaultWindow)}
}

// Sample feeds one orientation reading (beta in degrees) and reports
// whether it scored
func (r *TiltRound) Sample(beta float64) bool {
	if !r.open() || beta <= TiltThresholdDegrees {
		return false
	}
	r.score++
	return true
}
