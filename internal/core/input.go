package core

// Action represents a semantic sandbox action, abstracted from physical key
// presses. Sessions work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // Up arrow, K - move cursor up / menu up
	ActionDown               // Down arrow, J - move cursor down / menu down
	ActionLeft               // Left arrow, H - move cursor left
	ActionRight              // Right arrow, L - move cursor right
	ActionPaint              // Enter - paint at the cursor
	ActionTogglePlay         // Space, P - play/pause the simulation
	ActionStep               // N - advance exactly one tick
	ActionReset              // R - reload the current preset
	ActionClear              // C - empty the grid
	ActionRandomFill         // X - scatter random particles
	ActionUndo               // U, Ctrl+Z - restore the previous grid
	ActionNextElement        // Tab - select the next palette element
	ActionPrevElement        // Shift+Tab - select the previous palette element
	ActionBrushGrow          // ] - increase brush radius
	ActionBrushShrink        // [ - decrease brush radius
	ActionSave               // S - quicksave
	ActionLoad               // Ctrl+L - quickload
	ActionExport             // E - export JSON
	ActionExportImage        // Ctrl+S - export PNG
	ActionLowPower           // O - toggle low-power tick rate
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionQuit               // Q, Ctrl+C - exit session
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionPaint:       "Paint",
	ActionTogglePlay:  "TogglePlay",
	ActionStep:        "Step",
	ActionReset:       "Reset",
	ActionClear:       "Clear",
	ActionRandomFill:  "RandomFill",
	ActionUndo:        "Undo",
	ActionNextElement: "NextElement",
	ActionPrevElement: "PrevElement",
	ActionBrushGrow:   "BrushGrow",
	ActionBrushShrink: "BrushShrink",
	ActionSave:        "Save",
	ActionLoad:        "Load",
	ActionExport:      "Export",
	ActionExportImage: "ExportImage",
	ActionLowPower:    "LowPower",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects the actions triggered between two frames.
// Actions keep the order they arrived in so that, for example,
// "undo then step" is not replayed as "step then undo".
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Clear resets all actions for the next frame, keeping the allocation.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
