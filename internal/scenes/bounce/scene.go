// Package bounce implements a ball bouncing inside a bordered box.
// Each frame only touches the cells the ball left and entered, so
// presentation stays on the dirty path.
package bounce

import (
	"math/rand"
	"strconv"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

const (
	ballGlyph = 'O'
	minWidth  = 4
	minHeight = 4
)

var palette = []core.Color{
	core.ColorRed,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
}

// Scene implements the bouncing ball.
type Scene struct {
	rng *rand.Rand

	screenW int
	screenH int

	x, y   int
	dx, dy int
	prevX  int
	prevY  int
	drawn  bool
	color  int
	hits   int
	framed bool
}

func init() {
	registry.Register("bounce", func() registry.Scene { return New() })
}

// New creates a bounce scene.
func New() *Scene {
	return &Scene{}
}

// ID returns the scene identifier.
func (s *Scene) ID() string { return "bounce" }

// Title returns the display name.
func (s *Scene) Title() string { return "Bounce" }

// Reset places the ball at a seeded position inside the box.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.screenW = cfg.ScreenW
	s.screenH = cfg.ScreenH
	s.drawn = false
	s.framed = false
	s.hits = 0
	s.color = 0

	s.dx, s.dy = 1, 1
	if s.rng.Intn(2) == 0 {
		s.dx = -1
	}
	if s.rng.Intn(2) == 0 {
		s.dy = -1
	}

	if s.tooSmall() {
		return
	}
	s.x = 1 + s.rng.Intn(s.screenW-2)
	s.y = 1 + s.rng.Intn(s.screenH-2)
}

func (s *Scene) tooSmall() bool {
	return s.screenW < minWidth || s.screenH < minHeight
}

// Position returns the ball's current cell.
func (s *Scene) Position() (int, int) {
	return s.x, s.y
}

// Hits returns how many times the ball has struck a wall.
func (s *Scene) Hits() int {
	return s.hits
}

// Step moves the ball one cell, reflecting off the border.
func (s *Scene) Step() {
	if s.tooSmall() {
		return
	}

	inside := core.NewRect(1, 1, s.screenW-2, s.screenH-2)
	nx, ny := s.x+s.dx, s.y+s.dy
	bounced := false
	if !inside.Contains(nx, s.y) {
		s.dx = -s.dx
		nx = s.x + s.dx
		bounced = true
	}
	if !inside.Contains(s.x, ny) {
		s.dy = -s.dy
		ny = s.y + s.dy
		bounced = true
	}
	if bounced {
		s.hits++
		s.color = (s.color + 1) % len(palette)
	}

	s.x = core.Clamp(nx, 1, s.screenW-2)
	s.y = core.Clamp(ny, 1, s.screenH-2)
}

// Draw erases the previous ball, draws the new one and refreshes the
// hit counter on the top border.
func (s *Scene) Draw(c *render.Canvas) {
	if s.tooSmall() {
		c.DrawString(0, 0, "small", core.ColorWhite, core.ColorBlack)
		return
	}

	if !s.framed {
		s.drawFrame(c)
		s.framed = true
	}

	if s.drawn && (s.prevX != s.x || s.prevY != s.y) {
		c.DrawChar(s.prevX, s.prevY, ' ', core.ColorWhite, core.ColorBlack)
	}
	c.DrawChar(s.x, s.y, ballGlyph, palette[s.color], core.ColorBlack)
	s.prevX, s.prevY = s.x, s.y
	s.drawn = true

	label := " hits " + strconv.Itoa(s.hits) + " "
	if len(label) <= s.screenW-4 {
		c.DrawString(2, 0, label, core.ColorYellow, core.ColorBlack)
	}
}

func (s *Scene) drawFrame(c *render.Canvas) {
	w, h := s.screenW, s.screenH
	border := core.ColorGray

	c.FillRect(core.NewRect(1, 0, w-2, 1), '-', border, core.ColorBlack)
	c.FillRect(core.NewRect(1, h-1, w-2, 1), '-', border, core.ColorBlack)
	c.FillRect(core.NewRect(0, 1, 1, h-2), '|', border, core.ColorBlack)
	c.FillRect(core.NewRect(w-1, 1, 1, h-2), '|', border, core.ColorBlack)
	c.DrawChar(0, 0, '+', border, core.ColorBlack)
	c.DrawChar(w-1, 0, '+', border, core.ColorBlack)
	c.DrawChar(0, h-1, '+', border, core.ColorBlack)
	c.DrawChar(w-1, h-1, '+', border, core.ColorBlack)
}
