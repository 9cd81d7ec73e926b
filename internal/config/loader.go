package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSandbox loads the sandbox configuration and validates it.
// Search order: customPath -> ~/.sand/configs/sandbox.yaml -> ./configs/sandbox.yaml -> embedded default
func LoadSandbox(customPath string) (SandboxConfig, error) {
	cfg := DefaultSandboxConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	for _, path := range searchPaths("sandbox.yaml") {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// Unmarshal into a fresh copy so a broken file leaves no partial values.
		candidate := DefaultSandboxConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			candidate.Validate()
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSandboxYAML, &cfg); err != nil {
		return DefaultSandboxConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Validate()
	return cfg, nil
}

// searchPaths lists the user and local config locations for filename.
func searchPaths(filename string) []string {
	var paths []string
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		paths = append(paths, userCfgPath)
	}
	return append(paths, filepath.Join("configs", filename))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sand", "configs", filename)
}
