// Package progress renders a labeled percentage bar in place on the current
// line. Render is stateless and idempotent: every call receives the full
// progress state and redraws unconditionally.
package progress

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/flicker-sh/flicker/term"
)

var (
	// ErrArgument covers invalid inputs such as a negative counter.
	ErrArgument = errors.New("invalid progress argument")
	// ErrRange covers zero totals and widths and counters past the total.
	ErrRange = errors.New("progress value out of range")
)

const (
	filledGlyph = "█"
	emptyGlyph  = "░"

	// DefaultWidth is a convenient bar width for callers that have no reason
	// to pick one. Render itself requires an explicit positive width.
	DefaultWidth = 30
)

// Options configures a single render call.
type Options struct {
	Label string
	Width int
	// LinesAbove moves the cursor up that many lines before drawing and
	// restores it afterward, keeping the bar pinned above scrolling output.
	LinesAbove int
}

// Renderer draws progress bars on an injected screen.
type Renderer struct {
	screen *term.Screen
}

// New returns a Renderer bound to stderr.
func New() *Renderer {
	return NewWithScreen(term.NewScreen())
}

// NewWithScreen returns a Renderer bound to the given screen.
func NewWithScreen(s *term.Screen) *Renderer {
	return &Renderer{screen: s}
}

// Render draws the bar for current/total. The line is overwritten in place;
// a trailing newline is emitted only when current == total, finalizing the
// bar. All validation happens before any byte is written.
func (r *Renderer) Render(current, total int, opts Options) error {
	if current < 0 {
		return fmt.Errorf("%w: current %d is negative", ErrArgument, current)
	}
	if total <= 0 {
		return fmt.Errorf("%w: total must be positive, got %d", ErrRange, total)
	}
	if opts.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrRange, opts.Width)
	}
	if current > total {
		return fmt.Errorf("%w: current %d exceeds total %d", ErrRange, current, total)
	}
	if opts.LinesAbove < 0 {
		return fmt.Errorf("%w: lines above %d is negative", ErrArgument, opts.LinesAbove)
	}

	line := Format(current, total, opts.Label, opts.Width)

	if opts.LinesAbove > 0 {
		r.screen.SaveCursor()
		r.screen.CursorUp(opts.LinesAbove)
		r.screen.Overwrite(line)
		r.screen.RestoreCursor()
	} else {
		r.screen.Overwrite(line)
	}

	if current == total {
		r.screen.Newline()
	}
	return nil
}

// Format builds the bar line: `LABEL [<filled><empty>] NNN% (C/T)`. Filled and
// empty glyph counts always sum to width, the percent field is right-aligned
// to three characters and the counter is zero-padded to the digits of total.
func Format(current, total int, label string, width int) string {
	percent := current * 100 / total
	filled := current * width / total
	empty := width - filled
	digits := len(strconv.Itoa(total))

	return fmt.Sprintf("%s [%s%s] %3d%% (%0*d/%d)",
		label,
		strings.Repeat(filledGlyph, filled),
		strings.Repeat(emptyGlyph, empty),
		percent,
		digits, current,
		total,
	)
}
