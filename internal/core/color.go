package core

import "fmt"

// Color is a 24-bit true color value for a cell foreground or background.
// Two colors are equal when all three channels match, so == works directly.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from its three channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Equals reports whether c and other have identical channels.
func (c Color) Equals(other Color) bool {
	return c == other
}

// Hex returns the color in #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Predefined colors.
var (
	ColorBlack     = Color{0, 0, 0}
	ColorWhite     = Color{255, 255, 255}
	ColorRed       = Color{205, 49, 49}
	ColorGreen     = Color{13, 188, 121}
	ColorDarkGreen = Color{0, 95, 0}
	ColorBlue      = Color{36, 114, 200}
	ColorYellow    = Color{229, 229, 16}
	ColorCyan      = Color{17, 168, 205}
	ColorMagenta   = Color{188, 63, 188}
	ColorGray      = Color{128, 128, 128}
	ColorOrange    = Color{255, 135, 0}
)
