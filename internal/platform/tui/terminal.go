package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Terminal setup sequences written around a canvas session.
const (
	enterScreen = "\x1b[?1049h\x1b[?7l"
	leaveScreen = "\x1b[?7h\x1b[?1049l"
)

// Default size used when the output is not a terminal.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Terminal is the local byte sink and command source for a Player. It
// switches to the alternate screen with autowrap off and puts stdin in raw
// mode so single keys arrive without Enter. Reads can be cancelled so a
// finished session does not keep consuming keys meant for the next screen.
type Terminal struct {
	in     *os.File
	out    *os.File
	reader cancelreader.CancelReader
	state  *term.State
}

// OpenTerminal prepares stdin and stdout for a canvas session.
func OpenTerminal() (*Terminal, error) {
	t := &Terminal{in: os.Stdin, out: os.Stdout}

	if term.IsTerminal(int(t.in.Fd())) {
		state, err := term.MakeRaw(int(t.in.Fd()))
		if err != nil {
			return nil, fmt.Errorf("tui: cannot enter raw mode: %w", err)
		}
		t.state = state
	}

	reader, err := cancelreader.NewReader(t.in)
	if err != nil {
		t.restoreInput()
		return nil, fmt.Errorf("tui: cannot open input: %w", err)
	}
	t.reader = reader

	if _, err := t.out.WriteString(enterScreen); err != nil {
		t.reader.Close()
		t.restoreInput()
		return nil, fmt.Errorf("tui: cannot prepare terminal: %w", err)
	}
	return t, nil
}

// Size returns the terminal size, or 80x24 when it cannot be determined.
func (t *Terminal) Size() (int, int) {
	return TerminalSize(t.out)
}

// TerminalSize reports the size of f, falling back to 80x24.
func TerminalSize(f *os.File) (int, int) {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight
	}
	return w, h
}

// Read reads raw key bytes from stdin. It returns cancelreader.ErrCanceled
// once Restore has been called.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.reader.Read(p)
}

// Write sends canvas output to stdout.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// WatchSize polls the terminal size and calls onResize when it changes,
// until ctx is cancelled.
func (t *Terminal) WatchSize(ctx context.Context, interval time.Duration, onResize func(w, h int)) {
	lastW, lastH := t.Size()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w, h := t.Size()
			if w != lastW || h != lastH {
				lastW, lastH = w, h
				onResize(w, h)
			}
		}
	}
}

// Restore cancels pending reads, leaves the alternate screen and returns
// stdin to cooked mode.
func (t *Terminal) Restore() error {
	t.reader.Cancel()
	t.reader.Close()

	_, writeErr := t.out.WriteString(leaveScreen)
	if err := t.restoreInput(); err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("tui: cannot restore screen: %w", writeErr)
	}
	return nil
}

func (t *Terminal) restoreInput() error {
	if t.state == nil {
		return nil
	}
	state := t.state
	t.state = nil
	if err := term.Restore(int(t.in.Fd()), state); err != nil {
		return fmt.Errorf("tui: cannot restore terminal mode: %w", err)
	}
	return nil
}
