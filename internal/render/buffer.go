package render

// frameBuffer accumulates one presentation's output so it can be written to
// the sink in a single call. A positive limit caps its size; pieces that do
// not fit are skipped whole and counted instead of growing the buffer.
type frameBuffer struct {
	buf     []byte
	limit   int
	dropped int
}

func (b *frameBuffer) reset() {
	b.buf = b.buf[:0]
	b.dropped = 0
}

// write appends p and reports whether it was kept.
func (b *frameBuffer) write(p []byte) bool {
	if b.limit > 0 && len(b.buf)+len(p) > b.limit {
		b.dropped++
		return false
	}
	b.buf = append(b.buf, p...)
	return true
}

func (b *frameBuffer) writeByte(c byte) bool {
	if b.limit > 0 && len(b.buf)+1 > b.limit {
		b.dropped++
		return false
	}
	b.buf = append(b.buf, c)
	return true
}

func (b *frameBuffer) len() int {
	return len(b.buf)
}

func (b *frameBuffer) bytes() []byte {
	return b.buf
}
