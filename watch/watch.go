// Package watch monitors one background process at a time: it animates an
// indicator while the process runs, reaps its real exit code, and prints a
// colored verdict. The watch is a passive observer; it blocks exactly as long
// as the process runs and never imposes a timeout of its own.
package watch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/flicker-sh/flicker/proc"
	"github.com/flicker-sh/flicker/shutdown"
	"github.com/flicker-sh/flicker/style"
	"github.com/flicker-sh/flicker/term"
)

var (
	// ErrArgument indicates an empty or malformed handle.
	ErrArgument = errors.New("invalid watch argument")
	// ErrNotFound indicates the handle does not refer to a known task.
	ErrNotFound = errors.New("task not found")
)

const (
	successGlyph = "✓"
	failureGlyph = "✗"
)

// Options configures a single watch call. Labels left empty suppress the
// corresponding verdict line; that silence is intentional, not an error.
type Options struct {
	// Label is shown next to the animation frame while the task runs.
	Label string
	// Style names a registered indicator style. Empty uses style.Default.
	Style string
	// SuccessLabel is printed with a success glyph when the task exits zero.
	SuccessLabel string
	// FailureLabel is printed with a failure glyph when the task exits nonzero.
	FailureLabel string
}

// Watcher drives watch cycles against one terminal screen. Callers must not
// run two watches against the same screen concurrently; the terminal line is
// a single-writer resource.
type Watcher struct {
	screen      *term.Screen
	renderer    *lipgloss.Renderer
	success     lipgloss.Style
	failure     lipgloss.Style
	restoreOnce sync.Once
}

// New returns a Watcher bound to stderr.
func New() *Watcher {
	return NewWithScreen(term.NewScreen())
}

// NewWithScreen returns a Watcher rendering to the given screen.
func NewWithScreen(s *term.Screen) *Watcher {
	renderer := lipgloss.NewRenderer(s.Writer())
	return &Watcher{
		screen:   s,
		renderer: renderer,
		success:  renderer.NewStyle().Foreground(lipgloss.Color("10")),
		failure:  renderer.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Watch monitors the task behind h until it exits and returns its exit code.
// The code is only meaningful when the returned error is nil; validation
// failures never start the animation.
func (w *Watcher) Watch(h *proc.Handle, opts Options) (int, error) {
	if h == nil || h.PID() == 0 {
		return 0, fmt.Errorf("%w: empty handle", ErrArgument)
	}
	if !proc.Known(h) {
		return 0, fmt.Errorf("%w: pid %d", ErrNotFound, h.PID())
	}
	st, err := style.Get(opts.Style)
	if err != nil {
		return 0, err
	}

	w.restoreOnce.Do(func() {
		shutdown.AddHookWithPriority("restoring cursor", shutdown.PriorityTerminal, w.screen.ShowCursor)
	})

	w.screen.HideCursor()
	w.animate(h, st, opts.Label)
	code := h.Wait()
	w.screen.ClearLine()
	w.screen.ShowCursor()
	w.report(code, opts)
	return code, nil
}

// report prints the verdict line for the observed outcome. A missing label
// for the observed branch prints nothing.
func (w *Watcher) report(code int, opts Options) {
	switch {
	case code == 0 && opts.SuccessLabel != "":
		w.screen.Println(w.success.Render(successGlyph + " " + opts.SuccessLabel))
	case code != 0 && opts.FailureLabel != "":
		w.screen.Println(w.failure.Render(failureGlyph + " " + opts.FailureLabel))
	}
}

// SetNoColor disables colored verdict output.
func (w *Watcher) SetNoColor(noColor bool) {
	if noColor {
		w.renderer.SetColorProfile(termenv.Ascii)
		w.success = w.renderer.NewStyle()
		w.failure = w.renderer.NewStyle()
	}
}

// Screen returns the screen this watcher renders to.
func (w *Watcher) Screen() *term.Screen {
	return w.screen
}
