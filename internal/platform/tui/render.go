package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sand/internal/core"
)

// styleKey identifies a foreground/background pair.
type styleKey struct {
	fg, bg core.Color
}

// Painter converts Screen buffers to styled strings for one renderer.
// Styles are cached per color pair; a Painter is not safe for concurrent use.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[styleKey]lipgloss.Style
}

// NewPainter creates a painter. A nil renderer uses the lipgloss default,
// SSH sessions pass a renderer bound to their own terminal.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[styleKey]lipgloss.Style),
	}
}

func (p *Painter) style(k styleKey) lipgloss.Style {
	if st, ok := p.styles[k]; ok {
		return st
	}
	st := p.renderer.NewStyle()
	if k.fg.Set {
		st = st.Foreground(lipgloss.Color(k.fg.Hex()))
	}
	if k.bg.Set {
		st = st.Background(lipgloss.Color(k.bg.Hex()))
	}
	p.styles[k] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			k := styleKey{fg: cell.FG, bg: cell.BG}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.FG != k.fg || cell.BG != k.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if !k.fg.Set && !k.bg.Set {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(k).Render(run.String()))
		}
	}
	return sb.String()
}
