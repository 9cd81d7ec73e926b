// Package sim provides the falling-sand particle automaton.
// This package is UI-agnostic: it owns the element table, the grid buffers,
// the step engine, the brush, the scene codec, and the census.
package sim

import "fmt"

// ElementID identifies an element kind stored in a grid cell.
// The zero value is always Empty.
type ElementID uint8

// Element identifiers. Values are part of the persisted scene format.
const (
	Empty ElementID = iota
	Sand
	Water
	Stone
	Plant
	Fire
	Soil
	Wood
	Seed
	Steam
)

// Kind is the behavioral class the step engine dispatches on.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindStatic
	KindGranular
	KindFluid
	KindPlant
	KindFire
	KindGas
	kindCount
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindGranular:
		return "granular"
	case KindFluid:
		return "fluid"
	case KindPlant:
		return "plant"
	case KindFire:
		return "fire"
	case KindGas:
		return "gas"
	default:
		return "unknown"
	}
}

// RGB is a 24-bit display color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Element describes one particle kind and its physical parameters.
// Density, Fluidity, Drift and CoolDown are descriptive; movement is
// hard-coded per Kind.
type Element struct {
	ID        ElementID
	Key       string // Stable lowercase key used by CLI and config ("sand")
	Name      string // Display label
	Color     RGB
	Density   uint8
	Kind      Kind
	Static    bool
	Flammable bool
	Fluidity  int
	Drift     int
	CoolDown  int
}

var elements = [...]Element{
	{ID: Empty, Key: "empty", Name: "Empty", Color: RGB{12, 18, 30}, Density: 0, Kind: KindStatic, Static: true},
	{ID: Sand, Key: "sand", Name: "Sand", Color: RGB{228, 181, 92}, Density: 4, Kind: KindGranular},
	{ID: Water, Key: "water", Name: "Water", Color: RGB{64, 156, 255}, Density: 1, Kind: KindFluid, Fluidity: 2},
	{ID: Stone, Key: "stone", Name: "Stone", Color: RGB{90, 105, 120}, Density: 8, Kind: KindStatic, Static: true},
	{ID: Plant, Key: "plant", Name: "Plant", Color: RGB{96, 168, 92}, Density: 3, Kind: KindPlant, Flammable: true},
	{ID: Fire, Key: "fire", Name: "Fire", Color: RGB{255, 112, 64}, Density: 0, Kind: KindFire, Drift: -1, CoolDown: 24},
	{ID: Soil, Key: "soil", Name: "Soil", Color: RGB{120, 84, 52}, Density: 6, Kind: KindStatic, Static: true},
	{ID: Wood, Key: "wood", Name: "Wood", Color: RGB{139, 94, 60}, Density: 5, Kind: KindStatic, Static: true, Flammable: true},
	{ID: Seed, Key: "seed", Name: "Seed", Color: RGB{196, 170, 98}, Density: 3, Kind: KindGranular, Flammable: true},
	{ID: Steam, Key: "steam", Name: "Steam", Color: RGB{200, 210, 220}, Density: 0, Kind: KindGas, Drift: -1},
}

// kinds maps every possible cell value to its dispatch tag.
// Values outside the table stay KindUnknown.
var kinds [256]Kind

var byKey = make(map[string]ElementID, len(elements))

var palette = []ElementID{Sand, Water, Stone, Plant, Fire, Soil, Wood, Seed, Steam, Empty}

func init() {
	for _, e := range elements {
		kinds[e.ID] = e.Kind
		byKey[e.Key] = e.ID
	}
}

// Lookup returns the element registered under id.
func Lookup(id ElementID) (Element, bool) {
	if int(id) >= len(elements) {
		return Element{}, false
	}
	return elements[id], true
}

// MustLookup returns the element for id, or a placeholder for unknown ids.
func MustLookup(id ElementID) Element {
	if e, ok := Lookup(id); ok {
		return e
	}
	return Element{ID: id, Key: "unknown", Name: fmt.Sprintf("Unknown(%d)", id), Color: RGB{255, 0, 255}}
}

// ByKey resolves an element from its lowercase key.
func ByKey(key string) (Element, bool) {
	id, ok := byKey[key]
	if !ok {
		return Element{}, false
	}
	return elements[id], true
}

// KindOf returns the dispatch tag for a cell value.
func KindOf(id ElementID) Kind {
	return kinds[id]
}

// All returns every known element ordered by id.
func All() []Element {
	out := make([]Element, len(elements))
	copy(out, elements[:])
	return out
}

// Palette returns the element ids offered for painting.
// Empty (the eraser) is always last.
func Palette() []ElementID {
	out := make([]ElementID, len(palette))
	copy(out, palette)
	return out
}

// String returns the element key, or "unknown(n)".
func (id ElementID) String() string {
	if e, ok := Lookup(id); ok {
		return e.Key
	}
	return fmt.Sprintf("unknown(%d)", uint8(id))
}
