package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/sandbox"
)

// Model is the Bubble Tea model for one sandbox session.
type Model struct {
	session    *sandbox.Session
	screen     *core.Screen
	painter    *Painter
	keys       KeyMap
	help       help.Model
	clock      *core.FixedStep
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	loopID     int
	width      int
	height     int
	frames     int       // Frames drawn since fpsSince
	fpsSince   time.Time // Start of the current FPS window
	painting   bool      // Left mouse button is held
	quitOnBack bool      // Back ends the program instead of only flagging it
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(session *sandbox.Session, cfg core.RuntimeConfig, painter *Painter) Model {
	if painter == nil {
		painter = NewPainter(nil)
	}
	m := Model{
		session:    session,
		painter:    painter,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		clock:      core.NewFixedStep(session.TickRate()),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		loopID:     nextLoopID(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-1))
	m.fit()
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.loopID, m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.fit()
		return m, nil

	case FrameMsg:
		if msg.LoopID != m.loopID {
			return m, nil
		}
		return m.handleFrame(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input. Sandbox actions are queued and
// applied in order on the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if i, ok := PaletteIndex(msg); ok {
		m.session.SelectIndex(i)
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		m.fit()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse paints with the left button and resizes the brush with the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			x, y, ok := m.session.ScreenToGrid(msg.X, msg.Y, false)
			if !ok {
				return m, nil
			}
			m.painting = true
			m.session.SetCursor(x, y)
			m.session.BeginStroke()
			m.session.PaintAt(x, y)
		case tea.MouseButtonWheelUp:
			m.inputFrame.Set(core.ActionBrushGrow)
		case tea.MouseButtonWheelDown:
			m.inputFrame.Set(core.ActionBrushShrink)
		}

	case tea.MouseActionMotion:
		if !m.painting {
			return m, nil
		}
		if x, y, ok := m.session.ScreenToGrid(msg.X, msg.Y, false); ok {
			m.session.SetCursor(x, y)
			m.session.PaintAt(x, y)
		}

	case tea.MouseActionRelease:
		if m.painting {
			m.painting = false
			m.session.EndStroke()
		}
	}
	return m, nil
}

// handleFrame applies queued input and runs a simulation tick when one is due.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.clock.SetTPS(m.session.TickRate())
	m.session.Step(m.inputFrame, m.clock.Ready(now))
	m.inputFrame.Clear()
	m.measureFPS(now)
	return m, frameCmd(m.loopID, m.config.FrameRate)
}

// measureFPS reports the redraw rate to the HUD about once a second.
func (m *Model) measureFPS(now time.Time) {
	if m.fpsSince.IsZero() {
		m.fpsSince = now
		return
	}
	m.frames++
	if elapsed := now.Sub(m.fpsSince); elapsed >= time.Second {
		m.session.SetFrameRate(float64(m.frames) / elapsed.Seconds())
		m.frames = 0
		m.fpsSince = now
	}
}

// fit sizes the screen buffer to the terminal minus the help view.
func (m *Model) fit() {
	helpRows := lipgloss.Height(m.help.View(m.keys))
	m.screen.Resize(core.Max(1, m.width), core.Max(1, m.height-helpRows))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.session.Render(m.screen)
	return m.painter.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Session returns the sandbox driven by the model.
func (m Model) Session() *sandbox.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for the session. It reports whether
// the user asked to go back to the menu.
func Run(session *sandbox.Session, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewModel(session, cfg, nil)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse press, drag and release for painting
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
