package sandbox

import "github.com/vovakirdan/tui-sand/internal/sim"

// History is a bounded stack of grid snapshots used for undo.
// When full, pushing drops the oldest snapshot.
type History struct {
	limit     int
	snapshots []*sim.Grid
}

// NewHistory creates a history holding at most limit snapshots.
// A non-positive limit disables undo.
func NewHistory(limit int) *History {
	return &History{limit: max(0, limit)}
}

// Push stores a copy of g.
func (h *History) Push(g *sim.Grid) {
	if h.limit == 0 {
		return
	}
	if len(h.snapshots) == h.limit {
		copy(h.snapshots, h.snapshots[1:])
		h.snapshots = h.snapshots[:h.limit-1]
	}
	h.snapshots = append(h.snapshots, g.Clone())
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (*sim.Grid, bool) {
	n := len(h.snapshots)
	if n == 0 {
		return nil, false
	}
	g := h.snapshots[n-1]
	h.snapshots[n-1] = nil
	h.snapshots = h.snapshots[:n-1]
	return g, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Clear drops every snapshot.
func (h *History) Clear() {
	clear(h.snapshots)
	h.snapshots = h.snapshots[:0]
}
