// Package core provides the value types shared by the canvas and its callers.
// It contains no external dependencies so that grid bookkeeping stays pure
// and testable.
package core

// Rect is an axis-aligned rectangle in cell coordinates.
// W and H may go negative while clipping; Intersect clamps them back to zero.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	x := Min(r.X, other.X)
	y := Min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: Max(r.Right(), other.Right()) - x,
		H: Max(r.Bottom(), other.Bottom()) - y,
	}
}

// Intersect returns the overlapping part of r and other.
// The result has non-negative size; it is empty when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x := Max(r.X, other.X)
	y := Max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: Max(0, Min(r.Right(), other.Right())-x),
		H: Max(0, Min(r.Bottom(), other.Bottom())-y),
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
