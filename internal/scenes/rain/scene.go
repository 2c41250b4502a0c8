// Package rain implements falling glyph columns. The screen is wiped every
// ClearEvery ticks, which sends the next presentation down the full
// redraw path.
package rain

import (
	"math/rand"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/registry"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

// ClearEvery is the number of ticks between full wipes.
const ClearEvery = 300

const (
	trailLen = 6
	glyphs   = "0123456789abcdefghijklmnopqrstuvwxyz$#*+=<>"
)

var (
	headColor  = core.RGB(200, 255, 200)
	trailColor = core.ColorGreen
	tailColor  = core.ColorDarkGreen
)

type drop struct {
	y     int
	speed int
	wait  int
	glyph byte
}

// Scene implements the rain effect.
type Scene struct {
	rng     *rand.Rand
	drops   []drop
	tick    int
	screenW int
	screenH int
	wipe    bool
}

func init() {
	registry.Register("rain", func() registry.Scene { return New() })
}

// New creates a rain scene.
func New() *Scene {
	return &Scene{}
}

// ID returns the scene identifier.
func (s *Scene) ID() string { return "rain" }

// Title returns the display name.
func (s *Scene) Title() string { return "Rain" }

// Reset seeds one drop per column.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.screenW = cfg.ScreenW
	s.screenH = cfg.ScreenH
	s.tick = 0
	s.wipe = false

	s.drops = make([]drop, core.Max(cfg.ScreenW, 0))
	for i := range s.drops {
		s.drops[i] = s.newDrop(-s.rng.Intn(core.Max(cfg.ScreenH, 1)))
	}
}

func (s *Scene) newDrop(y int) drop {
	return drop{
		y:     y,
		speed: 1 + s.rng.Intn(3),
		glyph: glyphs[s.rng.Intn(len(glyphs))],
	}
}

// Step advances every drop whose wait has elapsed.
func (s *Scene) Step() {
	s.tick++
	if s.tick%ClearEvery == 0 {
		s.wipe = true
	}

	for i := range s.drops {
		d := &s.drops[i]
		d.wait++
		if d.wait < d.speed {
			continue
		}
		d.wait = 0
		d.y++
		d.glyph = glyphs[s.rng.Intn(len(glyphs))]
		if d.y-trailLen >= s.screenH {
			*d = s.newDrop(-s.rng.Intn(core.Max(s.screenH/2, 1)))
		}
	}
}

// Draw paints each column's head and trail and erases the cell that fell
// out of the trail.
func (s *Scene) Draw(c *render.Canvas) {
	if s.wipe {
		c.Clear(core.ColorBlack)
		s.wipe = false
	}

	for x, d := range s.drops {
		if d.wait != 0 {
			continue
		}
		c.DrawChar(x, d.y, d.glyph, headColor, core.ColorBlack)
		if cell, ok := c.CellAt(x, d.y-1); ok && cell.Glyph != ' ' {
			c.DrawChar(x, d.y-1, cell.Glyph, trailColor, core.ColorBlack)
		}
		if cell, ok := c.CellAt(x, d.y-trailLen/2); ok && cell.Glyph != ' ' {
			c.DrawChar(x, d.y-trailLen/2, cell.Glyph, tailColor, core.ColorBlack)
		}
		c.DrawChar(x, d.y-trailLen, ' ', core.ColorWhite, core.ColorBlack)
	}
}
