// Package shutdown runs registered cleanup hooks when the process is
// interrupted. The watcher uses it to restore the cursor and terminate
// watched children so an aborted watch never leaves the terminal broken.
package shutdown

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/flanksource/commons/logger"
)

const (
	// PriorityProcesses stops watched child processes.
	PriorityProcesses = 100
	// PriorityDefault is for ordinary cleanup.
	PriorityDefault = 200
	// PriorityTerminal restores cursor and line state, after all output has
	// stopped.
	PriorityTerminal = 300
)

type hook struct {
	label    string
	priority int
	fn       func()
}

var (
	hooks    []hook
	hooksMux sync.Mutex
	once     sync.Once
)

// AddHook registers a cleanup hook with default priority.
func AddHook(label string, fn func()) {
	AddHookWithPriority(label, PriorityDefault, fn)
}

// AddHookWithPriority registers a cleanup hook; lower priorities run first.
func AddHookWithPriority(label string, priority int, fn func()) {
	hooksMux.Lock()
	defer hooksMux.Unlock()
	hooks = append(hooks, hook{label: label, priority: priority, fn: fn})
}

// Shutdown executes all registered hooks in priority order. Each hook runs at
// most once; a panicking hook does not stop the others.
func Shutdown() {
	hooksMux.Lock()
	pending := hooks
	hooks = nil
	hooksMux.Unlock()

	if len(pending) == 0 {
		return
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].priority < pending[j].priority
	})

	for _, h := range pending {
		logger.Debugf("executing shutdown hook: %s (priority=%d)", h.label, h.priority)
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("panic in shutdown hook %s: %v", h.label, r)
				}
			}()
			h.fn()
		}()
	}
}

// WaitForSignal blocks for SIGINT/SIGTERM, runs the hooks and exits with the
// conventional interrupted status. A second signal forces an immediate exit.
func WaitForSignal() {
	once.Do(func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nreceived %s, cleaning up\n", sig)

		go func() {
			<-sigChan
			os.Exit(1)
		}()

		Shutdown()
		os.Exit(130)
	})
}
