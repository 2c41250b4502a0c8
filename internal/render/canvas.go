// Package render implements a double-buffered character canvas that writes
// the minimal set of cursor and color sequences needed to bring a terminal
// up to date with the most recent frame.
//
// A Canvas is not safe for concurrent use. Callers issue all draw calls for
// a frame and then call Present from the same goroutine.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/tui-canvas/internal/core"
)

var (
	// ErrInvalidSize is returned for non-positive canvas dimensions.
	ErrInvalidSize = errors.New("render: canvas dimensions must be positive")
	// ErrTooLarge is returned when width*height exceeds MaxCells.
	ErrTooLarge = errors.New("render: canvas exceeds maximum cell count")
	// ErrNilSink is returned when no output writer is supplied.
	ErrNilSink = errors.New("render: nil output sink")
	// ErrClosed is returned by Resize after Close.
	ErrClosed = errors.New("render: canvas is closed")
)

// Canvas owns a front grid (what the terminal shows) and a back grid (what
// the next frame will show) and tracks which regions of the back grid
// changed since the last presentation.
type Canvas struct {
	width  int
	height int
	front  []core.Cell
	back   []core.Cell

	dirty      []core.Rect
	fullRedraw bool

	// Last emitted colors, kept across presentations. colorValid is false
	// until something has been emitted, which acts as the unset sentinel.
	lastFg     core.Color
	lastBg     core.Color
	colorValid bool

	sink   io.Writer
	opts   Options
	frame  frameBuffer
	seq    []byte
	closed bool
}

// NewCanvas allocates both grids filled with blank cells. The first
// presentation always repaints the whole screen.
func NewCanvas(width, height int, sink io.Writer, opts Options) (*Canvas, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	front, back, err := allocGrids(width, height)
	if err != nil {
		return nil, err
	}

	return &Canvas{
		width:      width,
		height:     height,
		front:      front,
		back:       back,
		fullRedraw: true,
		sink:       sink,
		opts:       opts,
		frame:      frameBuffer{limit: opts.MaxFrameBytes},
		seq:        make([]byte, 0, 64),
	}, nil
}

// allocGrids creates the two blank grids for a width x height canvas.
func allocGrids(width, height int) ([]core.Cell, []core.Cell, error) {
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > MaxCells/height {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}

	size := width * height
	front := make([]core.Cell, size)
	back := make([]core.Cell, size)
	for i := range front {
		front[i] = core.DefaultCell
		back[i] = core.DefaultCell
	}
	return front, back, nil
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// Bounds returns the canvas area as a rectangle at the origin.
func (c *Canvas) Bounds() core.Rect {
	return core.NewRect(0, 0, c.width, c.height)
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// CellAt returns a pointer into the back grid, or false when (x, y) is out
// of range. Writes through the pointer are not tracked; callers that mutate
// it must call MarkDirty themselves. The pointer is invalid after Present.
func (c *Canvas) CellAt(x, y int) (*core.Cell, bool) {
	if !c.inBounds(x, y) {
		return nil, false
	}
	return &c.back[y*c.width+x], true
}

// FrontCell returns the cell currently believed to be on screen.
func (c *Canvas) FrontCell(x, y int) (core.Cell, bool) {
	if !c.inBounds(x, y) {
		return core.Cell{}, false
	}
	return c.front[y*c.width+x], true
}

// SetCell writes cell into the back grid at (x, y). Out-of-range
// coordinates and writes that would not change the cell are ignored.
//
// Under SwapExchange an untouched back cell holds the frame from two
// presentations ago, so it only counts as unchanged when the front grid
// agrees or it was already written this frame.
func (c *Canvas) SetCell(x, y int, cell core.Cell) {
	if !c.inBounds(x, y) {
		return
	}
	idx := y*c.width + x
	if c.back[idx].Equals(cell) && c.settled(idx, cell) {
		return
	}
	cell.Changed = true
	c.back[idx] = cell
	c.MarkDirty(core.NewRect(x, y, 1, 1))
}

func (c *Canvas) settled(idx int, cell core.Cell) bool {
	return c.opts.SwapPolicy == SwapCopy || c.back[idx].Changed || c.front[idx].Equals(cell)
}

// DrawChar draws a single glyph.
func (c *Canvas) DrawChar(x, y int, glyph byte, fg, bg core.Color) {
	c.SetCell(x, y, core.Cell{Glyph: glyph, Fg: fg, Bg: bg})
}

// DrawString draws text left to right starting at (x, y), one cell per
// character. It does not wrap; characters past the right edge are dropped.
// Characters outside 7-bit ASCII are drawn as '?'.
func (c *Canvas) DrawString(x, y int, text string, fg, bg core.Color) {
	col := x
	for _, r := range text {
		glyph := byte('?')
		if r < 0x80 {
			glyph = byte(r)
		}
		c.DrawChar(col, y, glyph, fg, bg)
		col++
	}
}

// FillRect draws glyph over every in-range cell of r.
func (c *Canvas) FillRect(r core.Rect, glyph byte, fg, bg core.Color) {
	r = r.Intersect(c.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.DrawChar(x, y, glyph, fg, bg)
		}
	}
}

// Clear blanks the back grid with the given background and schedules a
// full repaint for the next presentation.
func (c *Canvas) Clear(bg core.Color) {
	if c.closed {
		return
	}
	blank := core.BlankCell(bg)
	for i := range c.back {
		if c.back[i].Equals(blank) {
			continue
		}
		c.back[i] = blank
		c.back[i].Changed = true
	}
	c.fullRedraw = true
}

// MarkDirty records r as changed since the last presentation.
func (c *Canvas) MarkDirty(r core.Rect) DirtyResult {
	if c.closed || r.Empty() {
		return DirtyIgnored
	}
	if c.opts.MaxDirtyRegions > 0 && len(c.dirty) >= c.opts.MaxDirtyRegions {
		c.fullRedraw = true
		return DirtyDropped
	}
	c.dirty = append(c.dirty, r)
	return DirtyRecorded
}

// DirtyRegions returns a copy of the regions recorded since the last
// presentation, in recording order.
func (c *Canvas) DirtyRegions() []core.Rect {
	out := make([]core.Rect, len(c.dirty))
	copy(out, c.dirty)
	return out
}

// NeedsFullRedraw reports whether the next presentation repaints everything.
func (c *Canvas) NeedsFullRedraw() bool {
	return c.fullRedraw
}

// Invalidate schedules a full repaint of the back grid without changing
// its content. Use it when the screen may no longer match the front grid.
func (c *Canvas) Invalidate() {
	if c.closed {
		return
	}
	c.fullRedraw = true
}

// Resize reallocates both grids at the new size and schedules a full
// repaint. Content is not preserved. On error the canvas is unchanged.
// A closed canvas cannot be resized and returns ErrClosed.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrClosed
	}
	if width == c.width && height == c.height {
		return nil
	}
	front, back, err := allocGrids(width, height)
	if err != nil {
		return err
	}
	c.width, c.height = width, height
	c.front, c.back = front, back
	c.dirty = c.dirty[:0]
	c.fullRedraw = true
	c.colorValid = false
	return nil
}

// String returns the front grid glyphs, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		row := c.front[y*c.width : (y+1)*c.width]
		for _, cell := range row {
			sb.WriteByte(printable(cell.Glyph))
		}
	}
	return sb.String()
}

// Close resets colors, shows the cursor and releases both grids. Later
// draw and present calls are no-ops and Resize fails with ErrClosed.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.front, c.back, c.dirty = nil, nil, nil
	c.width, c.height = 0, 0

	out := make([]byte, 0, len(seqReset)+len(seqCursorShow))
	out = append(out, seqReset...)
	out = append(out, seqCursorShow...)
	if _, err := c.sink.Write(out); err != nil {
		return fmt.Errorf("render: restore terminal: %w", err)
	}
	return nil
}
