// Package minigame models the four client-side mini-games as pure score
// accumulators. A round counts qualifying events inside a fixed time
// window and reports a single non-negative increment at the end; sensors,
// timers, and rendering belong to whatever front-end is feeding it.
package minigame

import (
	"context"
	"errors"
	"time"

	"github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"
)

// Kind identifies a mini-game
type Kind string

const (
	KindTap   Kind = "tap"
	KindTilt  Kind = "tilt"
	KindShake Kind = "shake"
	KindDraw  Kind = "draw"
)

const (
	// DefaultWindow is the round length
	DefaultWindow = 10 * time.Second
	// DefaultTapCells is the size of the tap grid
	DefaultTapCells = 16
	// TiltThresholdDegrees is the forward-tilt angle that scores a point
	TiltThresholdDegrees = 60.0
	// ShakeThreshold is the acceleration magnitude (gravity included)
	// that scores a point
	ShakeThreshold = 15.0
)

var (
	// ErrAlreadySubmitted is returned when a round's score is submitted twice
	ErrAlreadySubmitted = errors.New("round score already submitted")
)

// ScoreFunc delivers a round's accumulated score, typically by calling
// the session score endpoint
type ScoreFunc func(ctx context.Context, increment int) error

// round carries the state shared by every mini-game kind
type round struct {
	clock     clock.Clock
	kind      Kind
	deadline  time.Time
	score     int
	submitted bool
}

func newRound(clk clock.Clock, kind Kind, window time.Duration) round {
	if window <= 0 {
		window = DefaultWindow
	}
	return round{
		clock:    clk,
		kind:     kind,
		deadline: clk.Now().Add(window),
	}
}

// Kind returns the mini-game kind
func (r *round) Kind() Kind {
	return r.kind
}

// Score returns the points accumulated so far
func (r *round) Score() int {
	return r.score
}

// Deadline returns when the round's window closes
func (r *round) Deadline() time.Time {
	return r.deadline
}

// Expired returns true once the window has closed
func (r *round) Expired() bool {
	return r.clock.Now().After(r.deadline)
}

// open reports whether events can still score
func (r *round) open() bool {
	return !r.submitted && !r.Expired()
}

// Submit delivers the accumulated score exactly once. After Submit the
// round stops counting events, whether or not the delivery succeeded.
func (r *round) Submit(ctx context.Context, fn ScoreFunc) error {
	if r.submitted {
		return ErrAlreadySubmitted
	}
	r.submitted = true
	return fn(ctx, r.score)
}
