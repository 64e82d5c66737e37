package game

import (
	"time"

	"github.com/hailam/bitchess/internal/board"
)

// Clock tracks the wall time each side has spent searching. Searches cannot
// be interrupted, so the budget is enforced between moves: a side whose time
// is used up gets no further search and loses on time.
type Clock struct {
	budget    time.Duration // per side; 0 = unlimited
	spent     [2]time.Duration
	startTime time.Time // when the running search started
	running   board.Color
}

// NewClock creates a clock granting each side budget. A zero budget never
// runs out.
func NewClock(budget time.Duration) *Clock {
	return &Clock{budget: budget, running: board.NoColor}
}

// Start begins timing a search for c.
func (cl *Clock) Start(c board.Color) {
	cl.startTime = time.Now()
	cl.running = c
}

// Stop ends the running search and charges its time to the searching side.
func (cl *Clock) Stop() time.Duration {
	if cl.running == board.NoColor {
		return 0
	}
	elapsed := time.Since(cl.startTime)
	cl.spent[cl.running] += elapsed
	cl.running = board.NoColor
	return elapsed
}

// Spent returns the total search time of c.
func (cl *Clock) Spent(c board.Color) time.Duration {
	return cl.spent[c]
}

// Remaining returns the time c has left, or a negative value once exceeded.
// It is meaningless for an unlimited clock.
func (cl *Clock) Remaining(c board.Color) time.Duration {
	return cl.budget - cl.spent[c]
}

// Expired reports whether c may not start another search.
func (cl *Clock) Expired(c board.Color) bool {
	return cl.budget > 0 && cl.spent[c] >= cl.budget
}
