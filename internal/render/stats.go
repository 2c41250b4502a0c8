package render

// PresentMode identifies which path a presentation took.
type PresentMode int

const (
	// PresentIdle means nothing was dirty and nothing was written.
	PresentIdle PresentMode = iota
	// PresentDirty means only merged dirty regions were diffed and emitted.
	PresentDirty
	// PresentFull means the whole grid was repainted.
	PresentFull
)

// String returns a short name used as a metrics label.
func (m PresentMode) String() string {
	switch m {
	case PresentIdle:
		return "idle"
	case PresentDirty:
		return "dirty"
	case PresentFull:
		return "full"
	default:
		return "unknown"
	}
}

// FrameStats describes one call to Present.
type FrameStats struct {
	Mode         PresentMode
	Regions      int // dirty regions after merging (dirty path only)
	Cells        int // glyphs emitted
	ColorChanges int // color sequences emitted
	Bytes        int // bytes accepted by the sink
	Dropped      int // output pieces skipped because the frame buffer was full

	// Err is the sink write error, if any. The grids are swapped either way.
	Err error
}

// DirtyResult reports what MarkDirty did with a rectangle.
type DirtyResult int

const (
	// DirtyRecorded means the rectangle was appended to the dirty list.
	DirtyRecorded DirtyResult = iota
	// DirtyIgnored means the rectangle was empty or the canvas is closed.
	DirtyIgnored
	// DirtyDropped means the dirty list was full. The canvas falls back to a
	// full redraw on the next presentation instead.
	DirtyDropped
)

// String returns a human-readable name for the result.
func (r DirtyResult) String() string {
	switch r {
	case DirtyRecorded:
		return "recorded"
	case DirtyIgnored:
		return "ignored"
	case DirtyDropped:
		return "dropped"
	default:
		return "unknown"
	}
}
