package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

// colorStyle returns the lipgloss style for a cell's colors.
func colorStyle(fg, bg core.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
}

// RenderCanvas converts the on-screen grid of c to a styled string for
// display inside a Bubble Tea view.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderCanvas(c *render.Canvas) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	var run strings.Builder
	for y, h := 0, c.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < c.Width() {
			start, _ := c.FrontCell(x, y)

			run.Reset()
			for x < c.Width() {
				cell, _ := c.FrontCell(x, y)
				if cell.Fg != start.Fg || cell.Bg != start.Bg {
					break
				}
				run.WriteByte(displayGlyph(cell.Glyph))
				x++
			}

			sb.WriteString(colorStyle(start.Fg, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}

func displayGlyph(g byte) byte {
	if g < 0x20 || g > 0x7e {
		return ' '
	}
	return g
}
