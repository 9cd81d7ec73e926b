package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/sandbox"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick presets and saved scenes interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a preset, Tab to browse
saved scenes. Esc in a sandbox returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open preset
  Tab          - Saved scenes
  Q            - Quit

Examples:
  sand menu
  sand menu --fps 30
  sand menu --db ./scenes.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	launcher := newLauncher(cfg, store, logger)
	width, height := terminalSize()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		width, height = menuResult.Width, menuResult.Height
		if menuResult.Quit {
			return
		}

		var session *sandbox.Session
		if menuResult.WantsScenes {
			scenesResult, err := tui.RunScenes(store, width, height)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if scenesResult.Back {
				continue
			}
			if scenesResult.Scene == "" {
				return // User quit from the browser
			}
			session, err = launcher.OpenScene(scenesResult.Scene, width, height)
			if err != nil {
				logger.Warn("could not open scene", "scene", scenesResult.Scene, "err", err)
				continue
			}
		} else {
			session, err = launcher.NewSession(menuResult.PresetID, width, height)
			if err != nil {
				logger.Warn("could not create sandbox", "preset", menuResult.PresetID, "err", err)
				continue
			}
		}

		backToMenu, err := tui.Run(session, launcher.Runtime(width, height))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running sandbox: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
		width, height = terminalSize()
	}
}
