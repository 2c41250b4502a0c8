package render

import (
	"fmt"
	"strings"
)

// SwapPolicy decides what the back grid holds right after a presentation.
type SwapPolicy int

const (
	// SwapCopy exchanges the grids and then copies the just-presented frame
	// into the new back grid, so callers may draw only what changed.
	SwapCopy SwapPolicy = iota

	// SwapExchange only exchanges the grids. The new back grid holds the
	// frame presented two calls ago and callers must redraw every cell
	// that matters each frame. SetCell compares such stale cells against
	// the front grid so a value returning from two frames ago is emitted.
	SwapExchange
)

// String returns the config name of the policy.
func (p SwapPolicy) String() string {
	switch p {
	case SwapCopy:
		return "copy"
	case SwapExchange:
		return "exchange"
	default:
		return "unknown"
	}
}

// ParseSwapPolicy converts a config name into a SwapPolicy.
// An empty name selects SwapCopy.
func ParseSwapPolicy(name string) (SwapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "copy":
		return SwapCopy, nil
	case "exchange":
		return SwapExchange, nil
	default:
		return SwapCopy, fmt.Errorf("render: unknown swap policy %q", name)
	}
}

// MaxCells bounds width*height for a single canvas.
const MaxCells = 1 << 22

// Options tune a Canvas. The zero value is valid but unbounded; use
// DefaultOptions for production limits.
type Options struct {
	SwapPolicy SwapPolicy

	// MaxDirtyRegions caps the dirty list between presentations (0 = no cap).
	MaxDirtyRegions int

	// MaxFrameBytes caps the output of one presentation (0 = no cap).
	MaxFrameBytes int
}

// DefaultOptions returns the options used by the platform layer.
func DefaultOptions() Options {
	return Options{
		SwapPolicy:      SwapCopy,
		MaxDirtyRegions: 4096,
		MaxFrameBytes:   4 << 20,
	}
}
