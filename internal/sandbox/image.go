package sandbox

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/vovakirdan/tui-sand/internal/sim"
)

// ImageScale is the pixel size of one particle in exported images.
const ImageScale = 4

// GridImage renders g as an RGBA image with scale by scale pixels per cell.
func GridImage(g *sim.Grid, scale int) *image.RGBA {
	scale = max(1, scale)
	img := image.NewRGBA(image.Rect(0, 0, g.W*scale, g.H*scale))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := sim.MustLookup(g.Get(x, y)).Color
			rgba := color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
			for py := y * scale; py < (y+1)*scale; py++ {
				for px := x * scale; px < (x+1)*scale; px++ {
					img.SetRGBA(px, py, rgba)
				}
			}
		}
	}
	return img
}

// EncodePNG renders g and encodes it as PNG.
func EncodePNG(g *sim.Grid, scale int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, GridImage(g, scale)); err != nil {
		return nil, fmt.Errorf("sandbox: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
