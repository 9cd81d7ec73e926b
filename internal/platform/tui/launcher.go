package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/sandbox"
	"github.com/vovakirdan/tui-sand/internal/storage"
)

// ReservedRows is the number of screen rows below the grid: the sandbox
// HUD plus the short help line.
const ReservedRows = sandbox.HUDRows + 1

// Launcher builds sandbox sessions for one terminal.
type Launcher struct {
	Config   config.SandboxConfig
	Store    *storage.Store // nil disables save slots
	Logger   *log.Logger
	Observer sandbox.Observer
}

// Runtime returns the session settings for a screen of the given size.
// Grid sides left at zero in the config are fitted to the screen.
func (l Launcher) Runtime(screenW, screenH int) core.RuntimeConfig {
	rc := l.Config.Runtime()
	rc.ScreenW = screenW
	rc.ScreenH = screenH

	fit := rc.FitGrid(ReservedRows)
	if rc.GridW <= 0 {
		rc.GridW = fit.GridW
	}
	if rc.GridH <= 0 {
		rc.GridH = fit.GridH
	}
	return rc
}

func (l Launcher) options(rc core.RuntimeConfig, preset string) sandbox.Options {
	return sandbox.Options{
		Runtime:   rc,
		Preset:    preset,
		Element:   l.Config.DefaultElement(),
		MaxBrush:  l.Config.Brush.MaxSize,
		Store:     l.Store,
		ExportDir: l.Config.Storage.ExportDir,
		Logger:    l.Logger,
		Observer:  l.Observer,
	}
}

// NewSession creates a session built from a preset.
func (l Launcher) NewSession(preset string, screenW, screenH int) (*sandbox.Session, error) {
	return sandbox.New(l.options(l.Runtime(screenW, screenH), preset))
}

// OpenScene creates a session sized to a saved scene and loads it.
func (l Launcher) OpenScene(name string, screenW, screenH int) (*sandbox.Session, error) {
	if l.Store == nil {
		return nil, sandbox.ErrNoStore
	}
	rec, err := l.Store.Scene(name)
	if err != nil {
		return nil, err
	}

	rc := l.Runtime(screenW, screenH)
	rc.GridW = rec.Width
	rc.GridH = rec.Height

	preset := rec.Preset
	if !registry.Exists(preset) {
		preset = ""
	}
	s, err := sandbox.New(l.options(rc, preset))
	if err != nil {
		return nil, err
	}
	if err := s.Load(name); err != nil {
		return nil, fmt.Errorf("open scene %q: %w", name, err)
	}
	return s, nil
}
