// Package flicker watches already-launched background processes, animates a
// terminal indicator while they run, and reports verdicts carrying their real
// exit codes. Subpackages do the work; this package re-exports the surface
// most callers need.
package flicker

import (
	"sync"

	"github.com/flicker-sh/flicker/proc"
	"github.com/flicker-sh/flicker/progress"
	"github.com/flicker-sh/flicker/style"
	"github.com/flicker-sh/flicker/term"
	"github.com/flicker-sh/flicker/watch"
)

// Type aliases for the public surface
type (
	Handle       = proc.Handle
	Command      = proc.Command
	WatchOptions = watch.Options
	BarOptions   = progress.Options
	Style        = style.Style
	Screen       = term.Screen
	Watcher      = watch.Watcher
)

// Function aliases
var (
	Start       = proc.Start
	Startf      = proc.Startf
	NewCommand  = proc.New
	NewWatcher  = watch.New
	NewRenderer = progress.New
	Cancel      = watch.Cancel
	StyleNames  = style.Names
)

var (
	defaultWatcher  *watch.Watcher
	defaultRenderer *progress.Renderer
	defaultOnce     sync.Once
)

func defaults() (*watch.Watcher, *progress.Renderer) {
	defaultOnce.Do(func() {
		screen := term.NewScreen()
		defaultWatcher = watch.NewWithScreen(screen)
		defaultRenderer = progress.NewWithScreen(screen)
	})
	return defaultWatcher, defaultRenderer
}

// Watch monitors h on the process-wide stderr watcher.
func Watch(h *proc.Handle, opts watch.Options) (int, error) {
	w, _ := defaults()
	return w.Watch(h, opts)
}

// Render draws a progress bar on the process-wide stderr renderer.
func Render(current, total int, opts progress.Options) error {
	_, r := defaults()
	return r.Render(current, total, opts)
}
