package sim

import "fmt"

// Arena owns the two buffers a simulation alternates between.
// Ticking flips which buffer is current; contents are never copied.
type Arena struct {
	bufs    [2]*Grid
	current int
}

// NewArena allocates two empty grids of the given size.
func NewArena(w, h int) *Arena {
	return &Arena{bufs: [2]*Grid{NewGrid(w, h), NewGrid(w, h)}}
}

// Current returns the live grid. The pointer is only valid until the next
// Tick or Replace.
func (a *Arena) Current() *Grid {
	return a.bufs[a.current]
}

// Width returns the grid width.
func (a *Arena) Width() int { return a.bufs[0].W }

// Height returns the grid height.
func (a *Arena) Height() int { return a.bufs[0].H }

// Tick steps the current grid into the scratch buffer and makes the
// result current. It returns the particle count of the tick.
func (a *Arena) Tick(rng Rand) int {
	scratch := 1 - a.current
	_, particles := Step(a.bufs[a.current], a.bufs[scratch], rng)
	a.current = scratch
	return particles
}

// Replace installs g as the current grid. g must match the arena size;
// on error the arena is unchanged.
func (a *Arena) Replace(g *Grid) error {
	if !g.SameSize(a.bufs[0]) {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, g.W, g.H, a.Width(), a.Height())
	}
	if g == a.bufs[1-a.current] {
		a.current = 1 - a.current
		return nil
	}
	a.bufs[a.current] = g
	return nil
}

// Reset empties the current grid.
func (a *Arena) Reset() {
	a.bufs[a.current].Clear()
}
