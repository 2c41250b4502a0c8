package rain

import (
	"bytes"
	"testing"

	"github.com/vovakirdan/tui-canvas/internal/core"
	"github.com/vovakirdan/tui-canvas/internal/render"
)

func run(t *testing.T, w, h int, seed int64, ticks int) (*render.Canvas, []render.FrameStats) {
	t.Helper()

	var sink bytes.Buffer
	c, err := render.NewCanvas(w, h, &sink, render.DefaultOptions())
	if err != nil {
		t.Fatalf("NewCanvas() failed: %v", err)
	}

	s := New()
	s.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, Seed: seed})

	stats := make([]render.FrameStats, 0, ticks)
	for i := 0; i < ticks; i++ {
		s.Step()
		s.Draw(c)
		stats = append(stats, c.Present())
	}
	return c, stats
}

func TestPeriodicClearForcesFullRedraw(t *testing.T) {
	_, stats := run(t, 16, 8, 3, ClearEvery+1)

	if stats[0].Mode != render.PresentFull {
		t.Errorf("first frame mode = %v, expected full", stats[0].Mode)
	}
	for i := 1; i < ClearEvery-1; i++ {
		if stats[i].Mode == render.PresentFull {
			t.Fatalf("frame %d unexpectedly full", i)
		}
	}
	if stats[ClearEvery-1].Mode != render.PresentFull {
		t.Errorf("frame after wipe mode = %v, expected full", stats[ClearEvery-1].Mode)
	}
}

func TestDeterministicForSeed(t *testing.T) {
	a, _ := run(t, 12, 6, 99, 50)
	b, _ := run(t, 12, 6, 99, 50)

	if a.String() != b.String() {
		t.Errorf("same seed produced different screens:\n%s\n---\n%s", a.String(), b.String())
	}
}

func TestZeroSizeReset(t *testing.T) {
	s := New()
	s.Reset(core.RuntimeConfig{})
	s.Step()
	if len(s.drops) != 0 {
		t.Errorf("expected no drops, got %d", len(s.drops))
	}
}
