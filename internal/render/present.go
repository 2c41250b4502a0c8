package render

import "github.com/vovakirdan/tui-canvas/internal/core"

// Present writes the changes since the last presentation to the sink in one
// write, then swaps the grids. A scheduled full redraw repaints every cell;
// otherwise only the merged dirty regions are diffed against the front grid.
//
// Output that does not fit the frame buffer is skipped and counted in
// FrameStats.Dropped. Grid state stays consistent regardless of output or
// sink failures.
func (c *Canvas) Present() FrameStats {
	var stats FrameStats
	if c.closed {
		return stats
	}

	c.frame.reset()
	switch {
	case c.fullRedraw:
		stats.Mode = PresentFull
		c.presentFull(&stats)
		c.fullRedraw = false
	case len(c.dirty) > 0:
		stats.Mode = PresentDirty
		c.dirty = mergeRegions(c.dirty)
		stats.Regions = len(c.dirty)
		c.presentDirty(&stats)
	default:
		stats.Mode = PresentIdle
	}
	stats.Dropped = c.frame.dropped

	if c.frame.len() > 0 {
		n, err := c.sink.Write(c.frame.bytes())
		stats.Bytes = n
		stats.Err = err
	}

	c.swap()
	return stats
}

// presentFull repaints the whole back grid. Nothing on screen is assumed,
// so every glyph is emitted and colors start from the unset state.
func (c *Canvas) presentFull(stats *FrameStats) {
	c.frame.write(seqCursorHide)
	c.frame.write(seqReset)
	c.frame.write(seqClear)
	c.frame.write(seqHome)
	c.colorValid = false

	for y := 0; y < c.height; y++ {
		if y > 0 {
			c.seq = appendCursorPos(c.seq[:0], 0, y)
			c.frame.write(c.seq)
		}
		row := c.back[y*c.width : (y+1)*c.width]
		for _, cell := range row {
			c.emitCell(cell, stats)
		}
	}
}

// presentDirty emits the cells inside the merged dirty regions that differ
// from the front grid. Unchanged cells are stepped over with relative
// cursor moves; a row with no changed cells emits nothing at all.
func (c *Canvas) presentDirty(stats *FrameStats) {
	bounds := c.Bounds()
	for _, region := range c.dirty {
		r := region.Intersect(bounds)
		for y := r.Y; y < r.Bottom(); y++ {
			positioned := false
			skip := 0
			for x := r.X; x < r.Right(); x++ {
				idx := y*c.width + x
				cell := c.back[idx]
				if cell.Equals(c.front[idx]) {
					if positioned {
						skip++
					}
					continue
				}

				if !positioned {
					c.seq = appendCursorPos(c.seq[:0], x, y)
					c.frame.write(c.seq)
					positioned = true
				} else if skip > 0 {
					c.seq = appendCursorForward(c.seq[:0], skip)
					c.frame.write(c.seq)
				}
				skip = 0
				c.emitCell(cell, stats)
			}
		}
	}
}

// emitCell writes a color change when the running colors differ, then the
// glyph. The running colors only advance when the sequence was kept.
func (c *Canvas) emitCell(cell core.Cell, stats *FrameStats) {
	setFg := !c.colorValid || cell.Fg != c.lastFg
	setBg := !c.colorValid || cell.Bg != c.lastBg
	if setFg || setBg {
		c.seq = appendColors(c.seq[:0], cell.Fg, cell.Bg, setFg, setBg)
		if c.frame.write(c.seq) {
			c.lastFg, c.lastBg = cell.Fg, cell.Bg
			c.colorValid = true
			stats.ColorChanges++
		}
	}
	if c.frame.writeByte(printable(cell.Glyph)) {
		stats.Cells++
	}
}

// swap makes the back grid the new front grid and prepares the new back
// grid according to the swap policy.
func (c *Canvas) swap() {
	c.front, c.back = c.back, c.front
	if c.opts.SwapPolicy == SwapCopy {
		copy(c.back, c.front)
	}
	for i := range c.back {
		c.back[i].Changed = false
	}
	c.dirty = c.dirty[:0]
}

// mergeRegions repeatedly replaces any two intersecting rectangles with
// their union until no pair intersects. The first rectangle of a merged
// pair keeps its position; the second is removed. The slice is reused.
func mergeRegions(regions []core.Rect) []core.Rect {
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(regions); i++ {
			for j := i + 1; j < len(regions); {
				if !regions[i].Intersects(regions[j]) {
					j++
					continue
				}
				regions[i] = regions[i].Union(regions[j])
				regions = append(regions[:j], regions[j+1:]...)
				j = i + 1
				merged = true
			}
		}
	}
	return regions
}
