// Package config provides YAML-based configuration loading for the
// sandbox: grid geometry, simulation rates, brush and history limits,
// storage locations and logging.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// SandboxConfig contains all configuration for the sandbox.
type SandboxConfig struct {
	Grid    GridConfig    `yaml:"grid"`
	Sim     SimConfig     `yaml:"sim"`
	Brush   BrushConfig   `yaml:"brush"`
	History HistoryConfig `yaml:"history"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GridConfig defines the grid size. Zero fits the grid to the terminal.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimConfig defines simulation and redraw rates.
type SimConfig struct {
	TickRate     int   `yaml:"tick_rate"`
	LowPowerRate int   `yaml:"low_power_rate"`
	FrameRate    int   `yaml:"frame_rate"`
	Seed         int64 `yaml:"seed"` // 0 = seed from the clock
}

// BrushConfig defines the painting brush.
type BrushConfig struct {
	DefaultSize    int    `yaml:"default_size"`
	MaxSize        int    `yaml:"max_size"`
	DefaultElement string `yaml:"default_element"`
}

// HistoryConfig defines the undo history.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// StorageConfig defines where scenes are persisted.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	ExportDir string `yaml:"export_dir"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = no log file for the TUI
}

// Limits applied by Validate.
const (
	MaxGridSide  = 1024
	MaxTickRate  = 240
	MaxFrameRate = 120
	MaxHistory   = 64
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate clamps out-of-range values and replaces unknown names with
// defaults, so a partially written file still yields a usable config.
func (c *SandboxConfig) Validate() {
	def := DefaultSandboxConfig()

	c.Grid.Width = core.Clamp(c.Grid.Width, 0, MaxGridSide)
	c.Grid.Height = core.Clamp(c.Grid.Height, 0, MaxGridSide)

	if c.Sim.TickRate <= 0 {
		c.Sim.TickRate = def.Sim.TickRate
	}
	c.Sim.TickRate = core.Min(c.Sim.TickRate, MaxTickRate)
	if c.Sim.LowPowerRate <= 0 {
		c.Sim.LowPowerRate = def.Sim.LowPowerRate
	}
	c.Sim.LowPowerRate = core.Min(c.Sim.LowPowerRate, c.Sim.TickRate)
	if c.Sim.FrameRate <= 0 {
		c.Sim.FrameRate = def.Sim.FrameRate
	}
	c.Sim.FrameRate = core.Min(c.Sim.FrameRate, MaxFrameRate)

	if c.Brush.MaxSize <= 0 {
		c.Brush.MaxSize = def.Brush.MaxSize
	}
	c.Brush.MaxSize = core.Min(c.Brush.MaxSize, sim.MaxBrushRadius)
	c.Brush.DefaultSize = core.Clamp(c.Brush.DefaultSize, 1, c.Brush.MaxSize)
	c.Brush.DefaultElement = strings.ToLower(strings.TrimSpace(c.Brush.DefaultElement))
	if _, ok := sim.ByKey(c.Brush.DefaultElement); !ok {
		c.Brush.DefaultElement = def.Brush.DefaultElement
	}

	if c.History.Limit <= 0 {
		c.History.Limit = def.History.Limit
	}
	c.History.Limit = core.Min(c.History.Limit, MaxHistory)

	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}
	if c.Storage.ExportDir == "" {
		c.Storage.ExportDir = def.Storage.ExportDir
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !logLevels[c.Log.Level] {
		c.Log.Level = def.Log.Level
	}
}

// DefaultElement resolves the configured default brush element.
func (c SandboxConfig) DefaultElement() sim.ElementID {
	if e, ok := sim.ByKey(c.Brush.DefaultElement); ok {
		return e.ID
	}
	return sim.Sand
}

// Runtime converts the config into the runtime settings of one session.
// Zero grid dimensions are left for the platform to fit to the screen.
func (c SandboxConfig) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.GridW = c.Grid.Width
	rc.GridH = c.Grid.Height
	rc.TickRate = c.Sim.TickRate
	rc.LowPowerRate = c.Sim.LowPowerRate
	rc.FrameRate = c.Sim.FrameRate
	rc.BrushSize = c.Brush.DefaultSize
	rc.HistoryLimit = c.History.Limit
	rc.Seed = c.Sim.Seed
	return rc
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
