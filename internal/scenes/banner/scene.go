// Package banner implements a scrolling marquee with a moving color
// gradient.
package banner

import (
	"strings"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

// DefaultText is scrolled when no text is configured.
const DefaultText = "double-buffered terminal canvas   only changed cells are sent   "

var gradient = []core.Color{
	core.RGB(255, 95, 95),
	core.RGB(255, 175, 95),
	core.RGB(255, 255, 95),
	core.RGB(95, 255, 95),
	core.RGB(95, 215, 255),
	core.RGB(175, 135, 255),
}

// Scene implements the marquee.
type Scene struct {
	text    string
	offset  int
	tick    int
	screenW int
	screenH int
	row     int
}

func init() {
	registry.Register("banner", func() registry.Scene { return New(DefaultText) })
}

// New creates a banner that scrolls text.
func New(text string) *Scene {
	if text == "" {
		text = DefaultText
	}
	return &Scene{text: text}
}

// ID returns the scene identifier.
func (s *Scene) ID() string { return "banner" }

// Title returns the display name.
func (s *Scene) Title() string { return "Banner" }

// Reset centers the marquee row.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.screenW = cfg.ScreenW
	s.screenH = cfg.ScreenH
	s.row = cfg.ScreenH / 2
	s.offset = 0
	s.tick = 0
}

// Step scrolls by one column every other tick; the gradient moves every tick.
func (s *Scene) Step() {
	s.tick++
	if s.tick%2 == 0 {
		s.offset = (s.offset + 1) % len(s.text)
	}
}

// Visible returns the part of the text currently on screen.
func (s *Scene) Visible() string {
	if s.screenW <= 0 {
		return ""
	}
	n := s.screenW/len(s.text) + 2
	loop := strings.Repeat(s.text, n)
	return loop[s.offset : s.offset+s.screenW]
}

// Draw writes the marquee row. Cells whose glyph and colors repeat the
// previous frame are filtered out by the canvas.
func (s *Scene) Draw(c *render.Canvas) {
	visible := s.Visible()
	for i := 0; i < len(visible); i++ {
		fg := gradient[(i+s.tick)%len(gradient)]
		if visible[i] == ' ' {
			fg = core.ColorWhite
		}
		c.DrawChar(i, s.row, visible[i], fg, core.ColorBlack)
	}

	if s.row+2 < s.screenH {
		c.DrawString(0, s.row+2, "banner", core.ColorGray, core.ColorBlack)
	}
}
