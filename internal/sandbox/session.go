// Package sandbox hosts one interactive falling-sand session: the arena,
// the brush and palette state, the undo history, and the save, load and
// export operations. It has no Bubble Tea dependency; the platform feeds
// it input frames and draws what Render produces.
package sandbox

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/sim"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

// ErrNoStore is returned by slot operations when no store is configured.
var ErrNoStore = errors.New("sandbox: no scene store configured")

// Observer receives timing for every simulation tick.
type Observer interface {
	ObserveTick(d time.Duration, particles int)
}

// Options configures a new session.
type Options struct {
	Runtime   core.RuntimeConfig
	Preset    string        // Preset to start from; empty means blank
	Element   sim.ElementID // Initially selected element
	MaxBrush  int           // Largest brush radius; 0 means sim.MaxBrushRadius
	Store     *storage.Store
	ExportDir string
	Logger    *log.Logger
	Observer  Observer
}

// Session is one sandbox: a fixed-size grid plus everything the user
// can do to it. It is not safe for concurrent use; the platform serializes
// input and ticks.
type Session struct {
	cfg      core.RuntimeConfig
	arena    *sim.Arena
	rng      *rand.Rand
	presetID string

	palette  []sim.ElementID
	selected int
	brush    int
	maxBrush int
	cursorX  int
	cursorY  int
	offX     int
	offY     int
	view     viewport

	playing   bool
	lowPower  bool
	particles int
	ticks     uint64
	fps       float64

	history *History
	stroke  bool
	status  string

	store     *storage.Store
	exportDir string
	log       *log.Logger
	observer  Observer
	now       func() time.Time
}

// New creates a session with the configured grid size and loads the
// requested preset.
func New(opts Options) (*Session, error) {
	cfg := opts.Runtime
	if cfg.GridW <= 0 || cfg.GridH <= 0 {
		return nil, fmt.Errorf("sandbox: invalid grid size %dx%d", cfg.GridW, cfg.GridH)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	maxBrush := opts.MaxBrush
	if maxBrush <= 0 {
		maxBrush = sim.MaxBrushRadius
	}
	maxBrush = sim.ClampBrush(maxBrush)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:       cfg,
		arena:     sim.NewArena(cfg.GridW, cfg.GridH),
		rng:       sim.NewRand(cfg.Seed),
		palette:   sim.Palette(),
		maxBrush:  maxBrush,
		brush:     core.Clamp(cfg.BrushSize, 1, maxBrush),
		cursorX:   cfg.GridW / 2,
		cursorY:   cfg.GridH / 3,
		playing:   true,
		history:   NewHistory(cfg.HistoryLimit),
		store:     opts.Store,
		exportDir: opts.ExportDir,
		log:       logger,
		observer:  opts.Observer,
		now:       time.Now,
	}
	s.selectElement(opts.Element)

	presetID := opts.Preset
	if presetID == "" {
		presetID = "blank-slate"
	}
	if err := s.buildPreset(presetID); err != nil {
		return nil, err
	}
	s.history.Clear()
	s.status = "Ready"
	return s, nil
}

// PresetID returns the preset the session was last built from.
func (s *Session) PresetID() string { return s.presetID }

// Grid returns the live grid. It is only valid until the next tick or edit.
func (s *Session) Grid() *sim.Grid { return s.arena.Current() }

// Width returns the grid width.
func (s *Session) Width() int { return s.arena.Width() }

// Height returns the grid height.
func (s *Session) Height() int { return s.arena.Height() }

// Status returns the last status message.
func (s *Session) Status() string { return s.status }

// Brush returns the current brush radius.
func (s *Session) Brush() int { return s.brush }

// Cursor returns the keyboard cursor position in grid coordinates.
func (s *Session) Cursor() (int, int) { return s.cursorX, s.cursorY }

// Element returns the selected element.
func (s *Session) Element() sim.Element {
	return sim.MustLookup(s.palette[s.selected])
}

// Palette returns the selectable elements in order.
func (s *Session) Palette() []sim.ElementID {
	out := make([]sim.ElementID, len(s.palette))
	copy(out, s.palette)
	return out
}

// UndoDepth returns how many snapshots can be restored.
func (s *Session) UndoDepth() int { return s.history.Len() }

// State returns the host-visible state of the session.
func (s *Session) State() core.SimState {
	return core.SimState{
		Particles: s.particles,
		Ticks:     s.ticks,
		Playing:   s.playing,
		LowPower:  s.lowPower,
	}
}

// TickRate returns the current simulation rate in ticks per second.
func (s *Session) TickRate() int {
	if s.lowPower {
		return s.cfg.LowPowerRate
	}
	return s.cfg.TickRate
}

// SetFrameRate records the measured redraw rate for the HUD.
func (s *Session) SetFrameRate(fps float64) { s.fps = fps }

// Step applies the frame's actions in order, then advances the simulation
// by one tick if advance is set and the session is playing.
func (s *Session) Step(in core.InputFrame, advance bool) core.StepResult {
	stepped := false
	for _, a := range in.Actions {
		if s.apply(a) {
			stepped = true
		}
	}
	if advance && s.playing {
		s.Tick()
		stepped = true
	}
	return core.StepResult{State: s.State(), Stepped: stepped}
}

// Tick advances the simulation by exactly one step regardless of the
// play state.
func (s *Session) Tick() {
	start := time.Now()
	s.particles = s.arena.Tick(s.rng)
	s.ticks++
	if s.observer != nil {
		s.observer.ObserveTick(time.Since(start), s.particles)
	}
}

// SetPlaying starts or pauses the simulation.
func (s *Session) SetPlaying(playing bool) {
	s.playing = playing
	if playing {
		s.status = "Playing"
	} else {
		s.status = "Paused"
	}
}

// SetLowPower switches between the normal and reduced tick rates.
func (s *Session) SetLowPower(on bool) {
	s.lowPower = on
	s.status = fmt.Sprintf("Simulation rate %d ticks/s", s.TickRate())
}

// recount refreshes the particle count after an edit.
func (s *Session) recount() {
	s.particles = sim.CountParticles(s.arena.Current())
}

// replace installs g as the live grid after saving an undo snapshot.
func (s *Session) replace(g *sim.Grid) error {
	if !g.SameSize(s.arena.Current()) {
		return fmt.Errorf("sandbox: %w: got %dx%d, want %dx%d",
			sim.ErrDimensionMismatch, g.W, g.H, s.Width(), s.Height())
	}
	s.checkpoint()
	if err := s.arena.Replace(g); err != nil {
		return err
	}
	s.recount()
	return nil
}

// checkpoint pushes a copy of the live grid onto the undo history.
func (s *Session) checkpoint() {
	s.history.Push(s.arena.Current())
}
