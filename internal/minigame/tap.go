package minigame

import "github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"

// TapRound is a grid of cells where each cell scores one point the first
// time it is tapped. The round ends early once every cell has been hit.
type TapRound struct {
	round
	tapped []bool
	hits   int
}

// NewTapRound creates a tap round with the given grid size. A non-positive
// cell count falls back to DefaultTapCells.
func NewTapRound(clk clock.Clock, cells int) *TapRound {
	if cells <= 0 {
		cells = DefaultTapCells
	}
	return &TapRound{
		round:  newRound(clk, KindTap, DefaultWindow),
		tapped: make([]bool, cells),
	}
}

// Cells returns the grid size
func (r *TapRound) Cells() int {
	return len(r.tapped)
}

// Tap registers a tap on a cell and reports whether it scored. Out-of-range
// cells and repeat taps are ignored.
func (r *TapRound) Tap(cell int) bool {
	if !r.open() || cell < 0 || cell >= len(r.tapped) || r.tapped[cell] {
		return false
	}
	r.tapped[cell] = true
	r.hits++
	r.score++
	return true
}

// Done reports whether the round can score no further points, either
// because the grid is cleared or the window has closed
func (r *TapRound) Done() bool {
	return r.hits == len(r.tapped) || !r.open()
}
