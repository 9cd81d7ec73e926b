package sandbox

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sand/internal/core"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// HUDRows is the number of screen rows Render reserves below the grid.
const HUDRows = 2

// viewport is the part of the grid shown on screen during the last Render.
type viewport struct {
	originX  int // Screen column of the first visible grid column
	originPY int // Pixel row of the first visible grid row
	w, h     int // Visible grid size
}

// Render draws the visible part of the grid and the HUD into dst.
// Each screen cell shows two vertically stacked particles.
func (s *Session) Render(dst *core.Screen) {
	areaRows := max(0, dst.Height()-HUDRows)
	s.layout(dst.Width(), areaRows*2)

	g := s.arena.Current()
	for y := 0; y < s.view.h; y++ {
		for x := 0; x < s.view.w; x++ {
			gx, gy := s.offX+x, s.offY+y
			c := sim.MustLookup(g.Get(gx, gy)).Color
			col := core.RGB(c.R, c.G, c.B)
			if gx == s.cursorX && gy == s.cursorY {
				col = core.ColorAccent
			}
			dst.SetPixel(s.view.originX+x, s.view.originPY+y, col)
		}
	}

	s.renderHUD(dst, areaRows)
}

// layout fits the viewport into a screen area of w columns by ph pixel
// rows and scrolls it so the cursor stays visible.
func (s *Session) layout(w, ph int) {
	visW := core.Min(s.Width(), w)
	visH := core.Min(s.Height(), ph)

	if s.cursorX < s.offX {
		s.offX = s.cursorX
	}
	if s.cursorX >= s.offX+visW {
		s.offX = s.cursorX - visW + 1
	}
	if s.cursorY < s.offY {
		s.offY = s.cursorY
	}
	if s.cursorY >= s.offY+visH {
		s.offY = s.cursorY - visH + 1
	}
	s.offX = core.Clamp(s.offX, 0, core.Max(0, s.Width()-visW))
	s.offY = core.Clamp(s.offY, 0, core.Max(0, s.Height()-visH))

	s.view = viewport{
		originX:  (w - visW) / 2,
		originPY: ((ph - visH) / 2) &^ 1,
		w:        visW,
		h:        visH,
	}
}

// ScreenToGrid maps a screen cell to grid coordinates using the viewport
// of the last Render. Because a cell holds two particles, half selects
// the lower one. ok is false outside the visible grid.
func (s *Session) ScreenToGrid(sx, sy int, lower bool) (x, y int, ok bool) {
	py := sy * 2
	if lower {
		py++
	}
	x = sx - s.view.originX + s.offX
	y = py - s.view.originPY + s.offY
	inView := core.NewRect(s.view.originX, s.view.originPY, s.view.w, s.view.h)
	if !inView.Contains(sx, py) {
		return 0, 0, false
	}
	return x, y, true
}

func (s *Session) renderHUD(dst *core.Screen, row int) {
	x := 0
	for i, id := range s.palette {
		e := sim.MustLookup(id)
		label := fmt.Sprintf(" %s %s ", paletteKey(i), e.Name)
		fg := core.ColorMuted
		if i == s.selected {
			label = "[" + strings.TrimSpace(label) + "]"
			fg = core.RGB(e.Color.R, e.Color.G, e.Color.B)
			if id == sim.Empty {
				fg = core.ColorText
			}
		}
		dst.DrawTextColored(x, row, label, fg)
		x += len([]rune(label))
	}

	state := "▶"
	if !s.playing {
		state = "⏸"
	}
	power := ""
	if s.lowPower {
		power = " low-power"
	}
	info := fmt.Sprintf("%s %d tps%s │ %.0f fps │ brush %d │ %d,%d │ %d particles │ tick %d │ %s │ ",
		state, s.TickRate(), power, s.fps, s.brush, s.cursorX, s.cursorY,
		s.particles, s.ticks, s.presetID)
	dst.DrawTextColored(0, row+1, info, core.ColorText)

	statusColor := core.ColorOK
	if strings.Contains(s.status, "failed") {
		statusColor = core.ColorWarn
	}
	dst.DrawTextColored(len([]rune(info)), row+1, s.status, statusColor)
}

// paletteKey returns the number key that selects palette index i.
func paletteKey(i int) string {
	if i == 9 {
		return "0"
	}
	if i > 9 {
		return " "
	}
	return fmt.Sprintf("%d", i+1)
}
