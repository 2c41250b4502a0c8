package bounce

import (
	"bytes"
	"testing"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

func newScene(w, h int, seed int64) *Scene {
	s := New()
	s.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 30, Seed: seed})
	return s
}

func TestBallStaysInsideBorder(t *testing.T) {
	s := newScene(10, 6, 42)

	for i := 0; i < 500; i++ {
		s.Step()
		x, y := s.Position()
		if x < 1 || x > 8 || y < 1 || y > 4 {
			t.Fatalf("step %d: ball escaped to (%d,%d)", i, x, y)
		}
	}
	if s.Hits() == 0 {
		t.Error("ball never hit a wall in 500 steps")
	}
}

func TestSameSeedSamePath(t *testing.T) {
	a := newScene(20, 10, 7)
	b := newScene(20, 10, 7)

	for i := 0; i < 100; i++ {
		a.Step()
		b.Step()
		ax, ay := a.Position()
		bx, by := b.Position()
		if ax != bx || ay != by {
			t.Fatalf("step %d: paths diverged (%d,%d) vs (%d,%d)", i, ax, ay, bx, by)
		}
	}
}

func TestDrawErasesPreviousPosition(t *testing.T) {
	var sink bytes.Buffer
	c, err := render.NewCanvas(12, 8, &sink, render.DefaultOptions())
	if err != nil {
		t.Fatalf("NewCanvas() failed: %v", err)
	}

	s := newScene(12, 8, 1)
	s.Draw(c)
	c.Present()

	oldX, oldY := s.Position()
	s.Step()
	s.Draw(c)
	stats := c.Present()

	if stats.Mode != render.PresentDirty {
		t.Errorf("Mode = %v, expected dirty", stats.Mode)
	}

	old, _ := c.FrontCell(oldX, oldY)
	if old.Glyph != ' ' {
		t.Errorf("old position still shows %q", old.Glyph)
	}
	x, y := s.Position()
	cur, _ := c.FrontCell(x, y)
	if cur.Glyph != ballGlyph {
		t.Errorf("new position shows %q, expected ball", cur.Glyph)
	}
}

func TestTooSmallDoesNotPanic(t *testing.T) {
	var sink bytes.Buffer
	c, _ := render.NewCanvas(3, 2, &sink, render.DefaultOptions())

	s := newScene(3, 2, 0)
	s.Step()
	s.Draw(c)
	c.Present()
}
