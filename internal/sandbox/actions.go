package sandbox

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/scenes"
	"github.com/vovakirdan/tui-sand/internal/sim"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

// apply performs one action. It reports whether a simulation tick ran.
func (s *Session) apply(a core.Action) bool {
	switch a {
	case core.ActionUp:
		s.MoveCursor(0, -1)
	case core.ActionDown:
		s.MoveCursor(0, 1)
	case core.ActionLeft:
		s.MoveCursor(-1, 0)
	case core.ActionRight:
		s.MoveCursor(1, 0)
	case core.ActionPaint:
		s.Paint()
	case core.ActionTogglePlay:
		s.SetPlaying(!s.playing)
	case core.ActionStep:
		s.playing = false
		s.Tick()
		s.status = fmt.Sprintf("Stepped to tick %d", s.ticks)
		return true
	case core.ActionReset:
		s.Reset()
	case core.ActionClear:
		s.Clear()
	case core.ActionRandomFill:
		s.RandomFill()
	case core.ActionUndo:
		s.Undo()
	case core.ActionNextElement:
		s.CycleElement(1)
	case core.ActionPrevElement:
		s.CycleElement(-1)
	case core.ActionBrushGrow:
		s.SetBrush(s.brush + 1)
	case core.ActionBrushShrink:
		s.SetBrush(s.brush - 1)
	case core.ActionSave:
		//nolint:errcheck // Failure is reported through the status line
		s.Save(storage.QuickSlot)
	case core.ActionLoad:
		//nolint:errcheck // Failure is reported through the status line
		s.Load(storage.QuickSlot)
	case core.ActionExport:
		//nolint:errcheck // Failure is reported through the status line
		s.ExportJSON()
	case core.ActionExportImage:
		//nolint:errcheck // Failure is reported through the status line
		s.ExportPNG()
	case core.ActionLowPower:
		s.SetLowPower(!s.lowPower)
	}
	return false
}

// MoveCursor shifts the keyboard cursor, keeping it on the grid.
func (s *Session) MoveCursor(dx, dy int) {
	s.cursorX = core.Clamp(s.cursorX+dx, 0, s.Width()-1)
	s.cursorY = core.Clamp(s.cursorY+dy, 0, s.Height()-1)
}

// SetCursor places the keyboard cursor, keeping it on the grid.
func (s *Session) SetCursor(x, y int) {
	s.cursorX = core.Clamp(x, 0, s.Width()-1)
	s.cursorY = core.Clamp(y, 0, s.Height()-1)
}

// SetBrush sets the brush radius, clamped to [1, max].
func (s *Session) SetBrush(radius int) {
	s.brush = core.Clamp(radius, 1, s.maxBrush)
	s.status = fmt.Sprintf("Brush size %d", s.brush)
}

// SelectIndex selects the palette entry at i. Out-of-range indexes are ignored.
func (s *Session) SelectIndex(i int) {
	if i < 0 || i >= len(s.palette) {
		return
	}
	s.selected = i
	s.status = "Selected " + s.Element().Name
}

// CycleElement moves the palette selection by delta, wrapping around.
func (s *Session) CycleElement(delta int) {
	n := len(s.palette)
	s.SelectIndex(((s.selected+delta)%n + n) % n)
}

// selectElement selects id if it is in the palette.
func (s *Session) selectElement(id sim.ElementID) {
	for i, p := range s.palette {
		if p == id {
			s.selected = i
			return
		}
	}
}

// BeginStroke starts a brush stroke. The first paint of a stroke saves an
// undo snapshot; the rest of the stroke does not.
func (s *Session) BeginStroke() {
	s.stroke = true
	s.checkpoint()
}

// EndStroke finishes the current brush stroke.
func (s *Session) EndStroke() {
	s.stroke = false
}

// PaintAt applies the brush at grid coordinates (x, y). Outside a stroke
// it behaves as a single-dab stroke.
func (s *Session) PaintAt(x, y int) {
	if !s.stroke {
		s.checkpoint()
	}
	sim.ApplyBrush(s.arena.Current(), x, y, s.brush, s.palette[s.selected])
	s.recount()
}

// Paint applies the brush at the keyboard cursor.
func (s *Session) Paint() {
	s.PaintAt(s.cursorX, s.cursorY)
}

// Undo restores the most recent snapshot. It reports false when the
// history is empty.
func (s *Session) Undo() bool {
	g, ok := s.history.Pop()
	if !ok {
		s.status = "Nothing to undo"
		return false
	}
	if err := s.arena.Replace(g); err != nil {
		s.status = "Undo failed: " + err.Error()
		return false
	}
	s.recount()
	s.status = "Undone"
	return true
}

// Reset rebuilds the current preset.
func (s *Session) Reset() {
	if err := s.LoadPreset(s.presetID); err != nil {
		s.status = "Reset failed: " + err.Error()
		return
	}
	s.status = "Reset"
}

// Clear empties the grid.
func (s *Session) Clear() {
	s.checkpoint()
	s.arena.Reset()
	s.recount()
	s.status = "Cleared"
}

// RandomFill scatters random particles over the grid.
func (s *Session) RandomFill() {
	s.checkpoint()
	scenes.RandomFill(s.arena.Current(), s.rng)
	s.recount()
	s.status = "Random fill"
}

// LoadPreset replaces the grid with a freshly built preset.
func (s *Session) LoadPreset(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("sandbox: unknown preset %q", id)
	}
	s.checkpoint()
	return s.buildPreset(id)
}

// buildPreset builds id into the arena without touching the history.
func (s *Session) buildPreset(id string) error {
	p, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("sandbox: %w", err)
	}
	g := p.Build(s.Width(), s.Height(), s.rng)
	if err := s.arena.Replace(g); err != nil {
		return fmt.Errorf("sandbox: preset %q: %w", id, err)
	}
	s.presetID = id
	s.recount()
	s.status = "Loaded " + p.Title()
	return nil
}

// describe turns a persistence error into a short status message.
func describe(err error) string {
	switch {
	case errors.Is(err, ErrNoStore):
		return "no scene store"
	case errors.Is(err, storage.ErrSceneNotFound):
		return "slot is empty"
	case errors.Is(err, sim.ErrDimensionMismatch):
		return "scene size does not match this grid"
	case errors.Is(err, sim.ErrMalformedPayload):
		return "scene data is malformed"
	default:
		return err.Error()
	}
}
