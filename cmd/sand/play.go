package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/sandbox"
	"github.com/vovakirdan/tui-sand/internal/scenes"
)

var flagPlayScene string

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Open a sandbox",
	Long: `Open an interactive sandbox built from a preset (default: blank-slate),
or from a saved scene with --scene.

Controls:
  Mouse drag     - Paint with the selected element
  Arrows/hjkl    - Move the cursor, Enter paints at it
  1-9, 0         - Select element (0 is the eraser)
  Tab/Shift+Tab  - Next/previous element
  [ ]            - Brush size
  Space/P        - Play/pause,  N - single step,  O - low power
  U              - Undo,  R - reset,  C - clear,  X - random fill
  S / Ctrl+L     - Quicksave / quickload
  E / Ctrl+S     - Export JSON / PNG
  ?              - Full help
  Q/Ctrl+C       - Quit

Examples:
  sand play
  sand play garden-homestead
  sand play --scene quicksave
  sand play desert-dunes --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayScene, "scene", "", "Open a saved scene instead of a preset")
}

func runPlay(_ *cobra.Command, args []string) {
	presetID := scenes.DefaultPreset
	if len(args) == 1 {
		presetID = args[0]
	}
	if !registry.Exists(presetID) {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", presetID)
		fmt.Fprintln(os.Stderr, "Run 'sand list' to see available presets.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := sessionLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store := openStoreOrWarn(cfg)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	launcher := newLauncher(cfg, store, logger)

	var session *sandbox.Session
	if flagPlayScene != "" {
		session, err = launcher.OpenScene(flagPlayScene, width, height)
	} else {
		session, err = launcher.NewSession(presetID, width, height)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating sandbox: %v\n", err)
		return
	}

	if _, err := tui.Run(session, launcher.Runtime(width, height)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running sandbox: %v\n", err)
	}
}
