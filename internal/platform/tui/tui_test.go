package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/metrics"
	"github.com/vovakirdan/tui-sand/internal/sandbox"
	"github.com/vovakirdan/tui-sand/internal/sim"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH = 40, 12
	rc.GridW, rc.GridH = 20, 10
	rc.Seed = 7

	s, err := sandbox.New(sandbox.Options{Runtime: rc, Element: sim.Sand})
	if err != nil {
		t.Fatalf("sandbox.New: %v", err)
	}
	return NewModel(s, rc, nil)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("j"), core.ActionDown},
		{runes("h"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPaint},
		{runes("p"), core.ActionTogglePlay},
		{runes("n"), core.ActionStep},
		{runes("r"), core.ActionReset},
		{runes("c"), core.ActionClear},
		{runes("x"), core.ActionRandomFill},
		{runes("u"), core.ActionUndo},
		{tea.KeyMsg{Type: tea.KeyCtrlZ}, core.ActionUndo},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextElement},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionPrevElement},
		{runes("]"), core.ActionBrushGrow},
		{runes("["), core.ActionBrushShrink},
		{runes("s"), core.ActionSave},
		{tea.KeyMsg{Type: tea.KeyCtrlL}, core.ActionLoad},
		{runes("e"), core.ActionExport},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionExportImage},
		{runes("o"), core.ActionLowPower},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runes("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 9, true},
		{"a", 0, false},
		{"10", 0, false},
	}

	for _, tt := range tests {
		got, ok := PaletteIndex(runes(tt.key))
		if got != tt.want || ok != tt.ok {
			t.Errorf("PaletteIndex(%q) = %d, %v; want %d, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScenes},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestFrameTicksOwnLoopOnly(t *testing.T) {
	m := newTestModel(t)
	now := time.Now()

	m, cmd := update(t, m, FrameMsg{At: now, LoopID: m.loopID + 1})
	if cmd != nil || m.Session().State().Ticks != 0 {
		t.Fatal("frame from another loop was handled")
	}

	m, cmd = update(t, m, FrameMsg{At: now, LoopID: m.loopID})
	if cmd == nil {
		t.Fatal("frame loop stopped")
	}
	if got := m.Session().State().Ticks; got != 1 {
		t.Errorf("ticks = %d, want 1", got)
	}

	// Too early for the next tick.
	m, _ = update(t, m, FrameMsg{At: now.Add(time.Millisecond), LoopID: m.loopID})
	if got := m.Session().State().Ticks; got != 1 {
		t.Errorf("ticks = %d, want 1", got)
	}
}

func TestKeysApplyInOrderOnNextFrame(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Session().State().Particles != 0 {
		t.Fatal("paint applied before the frame")
	}

	m, _ = update(t, m, FrameMsg{At: time.Now(), LoopID: m.loopID})
	st := m.Session().State()
	if st.Playing {
		t.Error("expected paused after toggle")
	}
	if st.Ticks != 0 {
		t.Errorf("ticks = %d, want 0 while paused", st.Ticks)
	}
	if st.Particles == 0 {
		t.Error("expected painted particles")
	}
}

func TestNumberKeysSelectElement(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, runes("2"))
	if got := m.Session().Element().ID; got != sim.Water {
		t.Errorf("selected %v, want water", got)
	}
}

func TestMousePaintsOneStroke(t *testing.T) {
	m := newTestModel(t)
	m.View() // establishes the viewport

	press := tea.MouseMsg{X: 15, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = update(t, m, press)
	if m.Session().State().Particles == 0 {
		t.Fatal("press did not paint")
	}
	if x, y := m.Session().Cursor(); x != 5 || y != 2 {
		t.Errorf("cursor = %d,%d, want 5,2", x, y)
	}

	m, _ = update(t, m, tea.MouseMsg{X: 18, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, tea.MouseMsg{X: 18, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if got := m.Session().UndoDepth(); got != 1 {
		t.Errorf("undo depth = %d, want 1 for one stroke", got)
	}

	// Motion without a held button does nothing.
	before := m.Session().State().Particles
	m, _ = update(t, m, tea.MouseMsg{X: 25, Y: 6, Action: tea.MouseActionMotion})
	if got := m.Session().State().Particles; got != before {
		t.Errorf("particles = %d, want %d", got, before)
	}

	// Presses outside the grid are ignored.
	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Session().UndoDepth(); got != 1 {
		t.Errorf("undo depth = %d, want 1", got)
	}
}

func TestBackAndQuit(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || cmd != nil {
		t.Error("embedded model should flag back without quitting")
	}

	m = newTestModel(t)
	m.quitOnBack = true
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("standalone model should quit on back")
	}

	m, _ = update(t, newTestModel(t), runes("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("expected quitting model with empty view")
	}
}

func TestViewShowsHUDAndHelp(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 12})
	view := m.View()
	for _, want := range []string{"Sand", "particles", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPainterPlainRuns(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawTextColored(0, 1, "de", core.ColorAccent)

	out := NewPainter(nil).Render(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "abc" {
		t.Errorf("line 0 = %q, want abc", lines[0])
	}
	if !strings.Contains(lines[1], "de") {
		t.Errorf("line 1 = %q, want it to contain de", lines[1])
	}
}

func TestLauncherRuntimeFitsZeroGrid(t *testing.T) {
	cfg := config.DefaultSandboxConfig()
	cfg.Grid.Width, cfg.Grid.Height = 0, 0
	rc := Launcher{Config: cfg}.Runtime(80, 24)

	if rc.GridW != 80 || rc.GridH != (24-ReservedRows)*2 {
		t.Errorf("grid = %dx%d, want 80x%d", rc.GridW, rc.GridH, (24-ReservedRows)*2)
	}

	cfg.Grid.Width, cfg.Grid.Height = 64, 0
	rc = Launcher{Config: cfg}.Runtime(80, 24)
	if rc.GridW != 64 {
		t.Errorf("configured width = %d, want 64", rc.GridW)
	}
}

func TestLauncherOpenScene(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scenes.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	g := sim.NewGrid(30, 20)
	g.FillRect(0, 19, 29, 19, sim.Stone)
	if _, err := store.SaveScene("slot", "river-delta", g); err != nil {
		t.Fatalf("SaveScene: %v", err)
	}

	l := Launcher{Config: config.DefaultSandboxConfig(), Store: store}
	s, err := l.OpenScene("slot", 80, 24)
	if err != nil {
		t.Fatalf("OpenScene: %v", err)
	}
	if s.Width() != 30 || s.Height() != 20 {
		t.Errorf("size = %dx%d, want 30x20", s.Width(), s.Height())
	}
	if s.PresetID() != "river-delta" {
		t.Errorf("preset = %q, want river-delta", s.PresetID())
	}
	if !s.Grid().Equal(g) {
		t.Error("loaded grid differs from saved grid")
	}

	if _, err := l.OpenScene("missing", 80, 24); !errors.Is(err, storage.ErrSceneNotFound) {
		t.Errorf("err = %v, want ErrSceneNotFound", err)
	}
	if _, err := (Launcher{}).OpenScene("slot", 80, 24); !errors.Is(err, sandbox.ErrNoStore) {
		t.Errorf("err = %v, want ErrNoStore", err)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := config.DefaultSandboxConfig()
	cfg.Grid.Width, cfg.Grid.Height = 40, 30
	cfg.Sim.Seed = 3
	m := NewSessionModel(Launcher{Config: cfg}, NewPainter(nil), 80, 24)

	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		next, cmd := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
		return cmd
	}

	if cmd := step(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("expected the sandbox frame loop to start")
	}
	if m.state != stateSandbox || m.sandbox.Session().PresetID() != "garden-homestead" {
		t.Fatalf("state = %v, want sandbox with the first preset", m.state)
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu || m.sandbox != nil {
		t.Fatal("expected back at the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if m.state != stateScenes {
		t.Fatal("expected the scene browser")
	}
	if !strings.Contains(m.View(), "No scene store") {
		t.Error("browser should report the missing store")
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Fatal("expected back at the menu")
	}

	if cmd := step(runes("q")); cmd == nil || !m.quitting {
		t.Error("expected quit")
	}
}

// gaugeValue reads a gauge from the metrics registry.
func gaugeValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name && len(mf.GetMetric()) > 0 {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestSessionModelLeavingSandboxClearsParticles(t *testing.T) {
	cfg := config.DefaultSandboxConfig()
	cfg.Grid.Width, cfg.Grid.Height = 40, 30
	cfg.Sim.Seed = 3

	met := metrics.New()
	tracker := met.Track()
	m := NewSessionModel(Launcher{Config: cfg, Observer: tracker}, NewPainter(nil), 80, 24)
	m.tracker = tracker

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateSandbox {
		t.Fatal("expected the sandbox")
	}
	step(FrameMsg{At: time.Now(), LoopID: m.sandbox.loopID})
	if got := gaugeValue(t, met, "sand_particles"); got <= 0 {
		t.Fatalf("sand_particles = %v after a tick, want the preset's particles", got)
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Fatal("expected back at the menu")
	}
	if got := gaugeValue(t, met, "sand_particles"); got != 0 {
		t.Errorf("sand_particles = %v after leaving the sandbox, want 0", got)
	}
	if got := gaugeValue(t, met, "sand_sessions_active"); got != 1 {
		t.Errorf("sand_sessions_active = %v, want the connection still active", got)
	}
}
