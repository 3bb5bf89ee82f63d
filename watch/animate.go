package watch

import (
	"time"

	"github.com/samber/lo"

	"github.com/flicker-sh/flicker/proc"
	"github.com/flicker-sh/flicker/style"
)

// animate redraws `<frame> <label>` in place at the shared frame interval
// until the task is no longer alive. Liveness is re-checked every iteration;
// nothing but the task's own completion ends the loop.
func (w *Watcher) animate(h *proc.Handle, st style.Style, label string) {
	width := w.screen.Width()
	ticker := time.NewTicker(style.Interval)
	defer ticker.Stop()

	for i := 0; h.Alive(); i++ {
		frame := st.Frames[i%len(st.Frames)]
		line := frame + " " + label
		if len(line) > width {
			line = lo.Ellipsis(line, width)
		}
		w.screen.Overwrite(line)
		<-ticker.C
	}
}

// Animate runs the frame loop directly, without cursor management or a
// verdict. The style name is validated before any frame is drawn.
func (w *Watcher) Animate(h *proc.Handle, styleName, label string) error {
	if h == nil || h.PID() == 0 {
		return ErrArgument
	}
	st, err := style.Get(styleName)
	if err != nil {
		return err
	}
	w.animate(h, st, label)
	return nil
}
