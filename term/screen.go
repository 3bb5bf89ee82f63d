// Package term models the terminal as an injectable dependency. The watch and
// progress packages only ever touch the terminal through a Screen, so tests
// can substitute a buffer-backed one and inspect the exact bytes written.
package term

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// Screen wraps one terminal output stream with the small set of ANSI controls
// the monitor needs: cursor visibility, in-place line redraw, and cursor
// repositioning for pinned bars.
type Screen struct {
	out   *termenv.Output
	w     io.Writer
	fd    int
	isTTY bool
}

// NewScreen returns a Screen bound to stderr. Progress and animation output
// goes to stderr so that piped stdout from the watched command is unaffected.
func NewScreen() *Screen {
	fd := int(os.Stderr.Fd())
	return &Screen{
		out:   termenv.NewOutput(os.Stderr),
		w:     os.Stderr,
		fd:    fd,
		isTTY: xterm.IsTerminal(fd),
	}
}

// NewWriterScreen returns a Screen bound to an arbitrary writer, rendering
// without color. Intended for tests and non-terminal destinations.
func NewWriterScreen(w io.Writer) *Screen {
	return &Screen{
		out:   termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)),
		w:     w,
		fd:    -1,
		isTTY: false,
	}
}

// Writer exposes the underlying stream, e.g. for binding a lipgloss renderer.
func (s *Screen) Writer() io.Writer {
	return s.w
}

// IsTerminal reports whether the screen is attached to a real terminal.
func (s *Screen) IsTerminal() bool {
	return s.isTTY
}

// Width returns the terminal width in columns, defaulting to 80 when the
// stream is not a terminal or the size cannot be determined.
func (s *Screen) Width() int {
	if !s.isTTY {
		return 80
	}
	width, _, err := xterm.GetSize(s.fd)
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Print writes s verbatim.
func (s *Screen) Print(text string) {
	fmt.Fprint(s.w, text)
}

// Println writes s followed by a newline.
func (s *Screen) Println(text string) {
	fmt.Fprintln(s.w, text)
}

// Overwrite redraws the current line in place: carriage return, the new
// content, then a clear to end of line so a shorter redraw leaves no tail.
func (s *Screen) Overwrite(text string) {
	fmt.Fprint(s.w, "\r"+text)
	s.out.ClearLineRight()
}

// ClearLine erases the current line and parks the cursor at column one.
func (s *Screen) ClearLine() {
	fmt.Fprint(s.w, "\r")
	s.out.ClearLine()
}

// Newline emits a line ending.
func (s *Screen) Newline() {
	fmt.Fprint(s.w, "\n")
}

func (s *Screen) HideCursor() {
	s.out.HideCursor()
}

func (s *Screen) ShowCursor() {
	s.out.ShowCursor()
}

// CursorUp moves the cursor up n lines.
func (s *Screen) CursorUp(n int) {
	s.out.CursorUp(n)
}

// SaveCursor records the cursor position for a later RestoreCursor.
func (s *Screen) SaveCursor() {
	s.out.SaveCursorPosition()
}

// RestoreCursor returns the cursor to the last saved position.
func (s *Screen) RestoreCursor() {
	s.out.RestoreCursorPosition()
}
