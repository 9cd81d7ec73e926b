package sim

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Scene payload errors. Hydrate wraps one of these.
var (
	ErrMalformedPayload  = errors.New("sim: malformed scene payload")
	ErrDimensionMismatch = errors.New("sim: scene dimensions do not match")
)

// Payload is the persisted form of a grid.
// Data holds the cells in row-major order.
type Payload struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Data   []int `json:"data"`
}

// Serialize converts a grid into its payload.
func Serialize(g *Grid) Payload {
	data := make([]int, len(g.Cells))
	for i, id := range g.Cells {
		data[i] = int(id)
	}
	return Payload{Width: g.W, Height: g.H, Data: data}
}

// Encode serializes a grid to its JSON payload.
func Encode(g *Grid) ([]byte, error) {
	out, err := json.Marshal(Serialize(g))
	if err != nil {
		return nil, fmt.Errorf("sim: encoding scene: %w", err)
	}
	return out, nil
}

// Hydrate parses a JSON payload into a new grid of the expected size.
// It never returns a partial grid: any parse error, dimension mismatch,
// or data of the wrong length rejects the whole payload.
func Hydrate(data []byte, width, height int) (*Grid, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return p.Grid(width, height)
}

// Grid builds a new grid from the payload after validating it against the
// expected dimensions.
func (p Payload) Grid(width, height int) (*Grid, error) {
	if p.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrMalformedPayload)
	}
	if p.Width != width || p.Height != height {
		return nil, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrDimensionMismatch, p.Width, p.Height, width, height)
	}
	if len(p.Data) != width*height {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid",
			ErrMalformedPayload, len(p.Data), width, height)
	}

	g := NewGrid(width, height)
	for i, v := range p.Data {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: cell %d holds %d", ErrMalformedPayload, i, v)
		}
		g.Cells[i] = ElementID(v)
	}
	return g, nil
}
