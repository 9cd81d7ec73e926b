// Package registry provides a global registry for scene presets.
// Presets register themselves in init() functions, allowing the platform
// to discover and build starting scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-sand/internal/sim"
)

// Preset builds a starting scene for the sandbox.
// Builders are pure: all randomness comes from the supplied source.
type Preset interface {
	// ID returns a unique identifier for this preset (e.g., "river-delta").
	// Used for CLI commands and menus.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary shown in the preset menu.
	Description() string

	// Build returns a new grid of exactly w by h cells.
	Build(w, h int, rng sim.Rand) *sim.Grid
}

// PresetInfo contains metadata about a registered preset.
type PresetInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a preset.
type Factory func() Preset

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PresetInfo)
	order     []string
	mu        sync.RWMutex
)

// Register adds a preset factory to the registry.
// Typically called from an init() function.
// Panics if a preset with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: preset %q already registered", id))
	}

	factories[id] = f
	order = append(order, id)

	p := f()
	infos[id] = PresetInfo{
		ID:          id,
		Title:       p.Title(),
		Description: p.Description(),
	}
}

// List returns information about all registered presets in registration order.
func List() []PresetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PresetInfo, 0, len(order))
	for _, id := range order {
		result = append(result, infos[id])
	}
	return result
}

// Create instantiates a preset by its ID.
// Returns an error if the preset ID is not registered.
func Create(id string) (Preset, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown preset %q", id)
	}

	return f(), nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
