package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sand/internal/core"
)

// KeyMap defines the key bindings of the sandbox screen.
// Palette number keys are handled separately by PaletteIndex.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Paint       key.Binding
	TogglePlay  key.Binding
	Step        key.Binding
	Reset       key.Binding
	Clear       key.Binding
	RandomFill  key.Binding
	Undo        key.Binding
	NextElement key.Binding
	PrevElement key.Binding
	BrushGrow   key.Binding
	BrushShrink key.Binding
	Save        key.Binding
	Load        key.Binding
	Export      key.Binding
	ExportImage key.Binding
	LowPower    key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePlay, k.Paint, k.NextElement, k.BrushGrow, k.Undo, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Paint},
		{k.TogglePlay, k.Step, k.LowPower, k.Reset, k.Clear, k.RandomFill},
		{k.NextElement, k.PrevElement, k.BrushGrow, k.BrushShrink, k.Undo},
		{k.Save, k.Load, k.Export, k.ExportImage},
		{k.Help, k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Paint:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "paint")),
		TogglePlay:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
		Step:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "step")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		RandomFill:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "random fill")),
		Undo:        key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		NextElement: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next element")),
		PrevElement: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev element")),
		BrushGrow:   key.NewBinding(key.WithKeys("]", "+", "="), key.WithHelp("]", "bigger brush")),
		BrushShrink: key.NewBinding(key.WithKeys("[", "-"), key.WithHelp("[", "smaller brush")),
		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "quicksave")),
		Load:        key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("C-l", "quickload")),
		Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export json")),
		ExportImage: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "export png")),
		LowPower:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "low power")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Action translates a key message to a sandbox action.
// Help, Back and Quit are screen-level keys and map to ActionNone,
// ActionBack and ActionQuit respectively.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Paint):
		return core.ActionPaint
	case key.Matches(msg, k.TogglePlay):
		return core.ActionTogglePlay
	case key.Matches(msg, k.Step):
		return core.ActionStep
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.Clear):
		return core.ActionClear
	case key.Matches(msg, k.RandomFill):
		return core.ActionRandomFill
	case key.Matches(msg, k.Undo):
		return core.ActionUndo
	case key.Matches(msg, k.NextElement):
		return core.ActionNextElement
	case key.Matches(msg, k.PrevElement):
		return core.ActionPrevElement
	case key.Matches(msg, k.BrushGrow):
		return core.ActionBrushGrow
	case key.Matches(msg, k.BrushShrink):
		return core.ActionBrushShrink
	case key.Matches(msg, k.Save):
		return core.ActionSave
	case key.Matches(msg, k.Load):
		return core.ActionLoad
	case key.Matches(msg, k.Export):
		return core.ActionExport
	case key.Matches(msg, k.ExportImage):
		return core.ActionExportImage
	case key.Matches(msg, k.LowPower):
		return core.ActionLowPower
	}
	return core.ActionNone
}

// PaletteIndex maps the number keys 1-9 and 0 to palette indexes 0-9.
func PaletteIndex(msg tea.KeyMsg) (int, bool) {
	s := msg.String()
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	if s[0] == '0' {
		return 9, true
	}
	return int(s[0] - '1'), true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScenes
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScenes
	}
	return MenuActionNone
}
