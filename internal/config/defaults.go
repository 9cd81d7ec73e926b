package config

import (
	_ "embed"
)

//go:embed defaults/sandbox.yaml
var defaultSandboxYAML []byte

// DefaultSandboxConfig returns the default sandbox configuration.
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		Grid: GridConfig{
			Width:  176,
			Height: 118,
		},
		Sim: SimConfig{
			TickRate:     58,
			LowPowerRate: 28,
			FrameRate:    60,
		},
		Brush: BrushConfig{
			DefaultSize:    3,
			MaxSize:        20,
			DefaultElement: "sand",
		},
		History: HistoryConfig{
			Limit: 8,
		},
		Storage: StorageConfig{
			DBPath:    "~/.sand/scenes.db",
			ExportDir: "~/.sand/exports",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSandboxYAML
}
