package minigame

import "github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"

// DrawRound scores a point for every movement sample delivered while the
// pointer is held down. Lifting the pointer pauses scoring until the next
// press.
type DrawRound struct {
	round
	drawing bool
}

// NewDrawRound creates a draw round with the default window
func NewDrawRound(clk clock.Clock) *DrawRound {
	return &DrawRound{round: newRound(clk, KindDraw, DefaultWindow)}
}

// PointerDown starts a stroke
func (r *DrawRound) PointerDown() {
	if r.open() {
		r.drawing = true
	}
}

// PointerUp ends the current stroke
func (r *DrawRound) PointerUp() {
	r.drawing = false
}

// Move feeds one movement sample and reports whether it scored
func (r *DrawRound) Move() bool {
	if !r.open() || !r.drawing {
		return false
	}
	r.score++
	return true
}
