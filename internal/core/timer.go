package core

import "time"

// FixedStep gates simulation ticks behind a frame clock. Frames arrive
// faster than ticks; a tick is due once at least one interval has elapsed
// since the previous tick. Elapsed time beyond one interval is dropped so
// a stalled frame never produces a burst of catch-up ticks.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given
// ticks per second. The first call to Ready reports a tick.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration {
	return f.step
}

// Ready reports whether a tick is due at now. When it returns true the
// accumulator restarts from zero.
func (f *FixedStep) Ready(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta > 0 {
		f.accumulator += delta
	}
	if f.accumulator >= f.step {
		f.accumulator = 0
		return true
	}
	return false
}

// Reset forgets accumulated time; the next tick is due one interval after now.
func (f *FixedStep) Reset(now time.Time) {
	f.accumulator = 0
	f.last = now
}
