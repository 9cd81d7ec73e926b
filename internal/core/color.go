package core

import "fmt"

// Color is a 24-bit terminal color for a screen cell.
// The zero value means "use the terminal default".
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB creates a set color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// Hex returns the color as "#rrggbb", or "" for the default color.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Interface colors shared by HUD and menus.
var (
	ColorDefault = Color{}
	ColorText    = RGB(220, 226, 235)
	ColorMuted   = RGB(120, 132, 150)
	ColorAccent  = RGB(255, 196, 92)
	ColorWarn    = RGB(255, 112, 64)
	ColorOK      = RGB(96, 200, 120)
)
