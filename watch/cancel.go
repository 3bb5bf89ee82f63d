package watch

import (
	"fmt"

	"github.com/flanksource/commons/logger"

	"github.com/flicker-sh/flicker/proc"
)

// Cancel asks the task behind h to terminate and blocks until it has fully
// exited, returning its exit code. A failed termination request (task already
// gone, permission denied) is surfaced to the caller, never treated as
// success.
func Cancel(h *proc.Handle) (int, error) {
	if h == nil || h.PID() == 0 {
		return 0, fmt.Errorf("%w: empty handle", ErrArgument)
	}
	if err := h.Terminate(); err != nil {
		return 0, fmt.Errorf("terminating pid %d: %w", h.PID(), err)
	}
	logger.Debugf("cancellation requested for pid %d", h.PID())
	return h.Wait(), nil
}
