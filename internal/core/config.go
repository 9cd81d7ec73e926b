package core

// RuntimeConfig contains configuration passed to a sandbox session at
// initialization. Grid size is fixed for the life of the session.
type RuntimeConfig struct {
	ScreenW      int   // Screen width in characters
	ScreenH      int   // Screen height in characters
	GridW        int   // Grid width in particles
	GridH        int   // Grid height in particles
	TickRate     int   // Simulation ticks per second (default 58)
	LowPowerRate int   // Simulation ticks per second in low-power mode (default 28)
	FrameRate    int   // Redraws per second (default 60)
	BrushSize    int   // Initial brush radius
	HistoryLimit int   // Number of undo snapshots kept
	Seed         int64 // RNG seed for deterministic simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		GridW:        176,
		GridH:        118,
		TickRate:     58,
		LowPowerRate: 28,
		FrameRate:    60,
		BrushSize:    3,
		HistoryLimit: 8,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// FitGrid sizes the grid to the screen. Each terminal cell holds two
// vertically stacked particles; reserved rows are left for the HUD.
func (c RuntimeConfig) FitGrid(reservedRows int) RuntimeConfig {
	c.GridW = Max(1, c.ScreenW)
	c.GridH = Max(2, (c.ScreenH-reservedRows)*2)
	return c
}

// SimState is the host-visible state of a sandbox session.
type SimState struct {
	Particles int    // Non-empty cells in the current grid
	Ticks     uint64 // Simulation ticks since the session started
	Playing   bool   // Whether the simulation advances on its own
	LowPower  bool   // Whether the reduced tick rate is active
}

// StepResult is returned by a session after each frame.
type StepResult struct {
	State   SimState
	Stepped bool // Whether a simulation tick ran this frame
}
