// sand is a falling-sand particle sandbox for the terminal.
//
// Usage:
//
//	sand list                 - List scene presets
//	sand play [preset]        - Open a sandbox
//	sand menu                 - Pick presets and saved scenes interactively
//	sand run <preset>         - Run a preset headless and graph its particle count
//	sand scenes               - List saved scenes
//	sand export <slot> <file> - Write a saved scene to a JSON or PNG file
//	sand import <file> [slot] - Save a JSON scene file into a slot
//	sand serve                - Start SSH server for remote sandboxes
//
// Global flags:
//
//	--fps <rate>        - Redraws per second (default: from config)
//	--seed <value>      - RNG seed for reproducible scenes
//	--db <path>         - Scene database path (default: ~/.sand/scenes.db)
//	--config <path>     - Sandbox config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/storage"

	// Import scenes to register the presets
	_ "github.com/vovakirdan/tui-sand/internal/scenes"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sand",
	Short: "Falling sand - a particle sandbox in your terminal",
	Long: `Falling sand is a terminal particle sandbox. Paint sand, water, stone,
plants, fire, soil, wood, seeds and steam and watch them interact.

Available commands:
  list     - Show all scene presets
  play     - Open a sandbox directly
  menu     - Interactive preset and saved scene picker
  run      - Headless simulation with a particle graph
  scenes   - List saved scenes
  export   - Write a saved scene to a file
  import   - Save a scene file into a slot
  serve    - Start SSH server for remote sandboxes

Examples:
  sand list
  sand play river-delta
  sand menu
  sand run volcanic-ridge --ticks 500
  sand serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Redraws per second (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scene database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to sandbox config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for interactive sessions")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the sandbox config and applies the global flags.
func loadConfig() (config.SandboxConfig, error) {
	cfg, err := config.LoadSandbox(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagFPS > 0 {
		cfg.Sim.FrameRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.Sim.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	cfg.Validate()
	return cfg, nil
}

// newLogger creates the root logger writing to w.
func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sand",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// sessionLogger returns the logger for interactive sessions, which must not
// write to the terminal they draw on. Without a log file it discards.
func sessionLogger(cfg config.SandboxConfig) (*log.Logger, func(), error) {
	if cfg.Log.File == "" {
		return log.New(io.Discard), func() {}, nil
	}

	path := config.ExpandPath(cfg.Log.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	closeFn := func() {
		//nolint:errcheck // Best-effort close on exit
		f.Close()
	}
	return newLogger(f, cfg.Log.Level), closeFn, nil
}

// openStoreOrWarn opens the scene database. Interactive sessions still work
// without it, so failure only disables save slots.
func openStoreOrWarn(cfg config.SandboxConfig) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scene database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// newLauncher builds a launcher for interactive commands.
func newLauncher(cfg config.SandboxConfig, store *storage.Store, logger *log.Logger) tui.Launcher {
	return tui.Launcher{
		Config: cfg,
		Store:  store,
		Logger: logger,
	}
}
