package core

// Cell is one terminal character position.
type Cell struct {
	Glyph byte
	Fg    Color
	Bg    Color

	// Changed marks a cell written since the last presentation.
	// It is bookkeeping only and does not take part in equality.
	Changed bool
}

// BlankCell returns a space with a white foreground on the given background.
func BlankCell(bg Color) Cell {
	return Cell{Glyph: ' ', Fg: ColorWhite, Bg: bg}
}

// DefaultCell is the blank cell on a black background.
var DefaultCell = BlankCell(ColorBlack)

// Equals reports whether two cells show the same glyph in the same colors.
func (c Cell) Equals(other Cell) bool {
	return c.Glyph == other.Glyph && c.Fg == other.Fg && c.Bg == other.Bg
}
