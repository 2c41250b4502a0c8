package render

import (
	"strconv"

	"github.com/vovakirdan/tui-canvas/internal/core"
)

// Pre-allocated control sequences. All output is plain ASCII.
var (
	seqCursorHide  = []byte("\x1b[?25l")
	seqCursorShow  = []byte("\x1b[?25h")
	seqReset       = []byte("\x1b[0m")
	seqClear       = []byte("\x1b[2J")
	seqHome        = []byte("\x1b[H")
	seqCursorRight = []byte("\x1b[C")
)

// appendCursorPos appends an absolute cursor move (0-indexed input).
func appendCursorPos(dst []byte, x, y int) []byte {
	dst = append(dst, '\x1b', '[')
	dst = strconv.AppendInt(dst, int64(y+1), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(x+1), 10)
	return append(dst, 'H')
}

// appendCursorForward appends a relative move right by n columns.
func appendCursorForward(dst []byte, n int) []byte {
	if n <= 0 {
		return dst
	}
	if n == 1 {
		return append(dst, seqCursorRight...)
	}
	dst = append(dst, '\x1b', '[')
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, 'C')
}

// appendColors appends one SGR sequence carrying whichever of fg and bg are
// flagged. At least one flag must be set.
func appendColors(dst []byte, fg, bg core.Color, setFg, setBg bool) []byte {
	dst = append(dst, '\x1b', '[')
	if setFg {
		dst = append(dst, "38;2;"...)
		dst = appendRGB(dst, fg)
	}
	if setBg {
		if setFg {
			dst = append(dst, ';')
		}
		dst = append(dst, "48;2;"...)
		dst = appendRGB(dst, bg)
	}
	return append(dst, 'm')
}

func appendRGB(dst []byte, c core.Color) []byte {
	dst = strconv.AppendUint(dst, uint64(c.R), 10)
	dst = append(dst, ';')
	dst = strconv.AppendUint(dst, uint64(c.G), 10)
	dst = append(dst, ';')
	return strconv.AppendUint(dst, uint64(c.B), 10)
}

// printable maps a glyph to the byte actually sent. Control bytes and
// anything outside 7-bit ASCII would corrupt cursor tracking.
func printable(g byte) byte {
	switch {
	case g == 0:
		return ' '
	case g < 0x20 || g == 0x7f:
		return ' '
	case g > 0x7f:
		return '?'
	}
	return g
}
