// Package proc launches background commands and hands out Handles that the
// watch package polls for liveness, waits on for real exit codes, and signals
// for cancellation.
package proc

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/flanksource/commons/logger"

	"github.com/flicker-sh/flicker/shutdown"
)

// ErrNotStarted is returned when a command cannot be launched.
var ErrNotStarted = errors.New("process not started")

// Command describes a process to launch in the background.
type Command struct {
	Name   string
	Args   []string
	Cwd    string
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// New builds a Command for the given program and arguments.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

func (c Command) WithCwd(cwd string) Command {
	c.Cwd = cwd
	return c
}

func (c Command) WithEnv(env map[string]string) Command {
	c.Env = env
	return c
}

// WithOutput directs the child's stdout and stderr to the given writers.
// By default both are discarded so they cannot garble the animation line.
func (c Command) WithOutput(stdout, stderr io.Writer) Command {
	c.Stdout = stdout
	c.Stderr = stderr
	return c
}

// Handle tracks one background process from launch until its completion has
// been observed. A Handle is single-use: Wait consumes it and removes it from
// the registry.
type Handle struct {
	pid     int
	name    string
	cmd     *exec.Cmd
	started time.Time

	done     chan struct{}
	code     int
	consumed sync.Once
}

var (
	mu      sync.Mutex
	running = map[int]*Handle{}
)

// Start launches the command in the background and registers its Handle.
func (c Command) Start() (*Handle, error) {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Cwd
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotStarted, c.Name, err)
	}

	h := &Handle{
		pid:     cmd.Process.Pid,
		name:    c.Name,
		cmd:     cmd,
		started: time.Now(),
		done:    make(chan struct{}),
	}

	mu.Lock()
	running[h.pid] = h
	mu.Unlock()

	shutdown.AddHook("Stopping "+c.Name, func() {
		_ = h.Terminate()
	})

	logger.Debugf("started %s (pid %d)", c.Name, h.pid)
	go h.reap()
	return h, nil
}

// Start launches name with args in the background.
func Start(name string, args ...string) (*Handle, error) {
	return New(name, args...).Start()
}

// Startf launches a shell command line built from the format string.
func Startf(format string, args ...interface{}) (*Handle, error) {
	return New("sh", "-c", fmt.Sprintf(format, args...)).Start()
}

// reap waits on the child, records its exit code and closes the done channel.
// Signal deaths are translated to the shell convention of 128+signal so
// callers see the same code a shell's $? would report.
func (h *Handle) reap() {
	err := h.cmd.Wait()
	code := 0
	if err != nil {
		code = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				code = 128 + int(ws.Signal())
			}
		}
	}
	h.code = code
	logger.Debugf("%s (pid %d) exited with code %d", h.name, h.pid, code)
	close(h.done)
}

// PID returns the operating system process id.
func (h *Handle) PID() int {
	if h == nil {
		return 0
	}
	return h.pid
}

// Name returns the launched program name.
func (h *Handle) Name() string {
	return h.name
}

// StartedAt returns the launch time.
func (h *Handle) StartedAt() time.Time {
	return h.started
}

// Alive reports whether the process is still running. It never blocks and
// never consumes the handle.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the process has exited and returns its exit code. The
// first Wait consumes the handle: it is removed from the registry and no
// longer Known.
func (h *Handle) Wait() int {
	<-h.done
	h.consumed.Do(func() {
		mu.Lock()
		delete(running, h.pid)
		mu.Unlock()
	})
	return h.code
}

// Terminate sends SIGTERM to the process. The error from the signal is
// returned as-is, including "process already finished".
func (h *Handle) Terminate() error {
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

// Kill forcibly ends the process.
func (h *Handle) Kill() error {
	return h.cmd.Process.Kill()
}

// Lookup returns the registered handle for pid, or nil if the pid is unknown
// or its handle has already been consumed.
func Lookup(pid int) *Handle {
	mu.Lock()
	defer mu.Unlock()
	return running[pid]
}

// Known reports whether h still refers to a registered, unconsumed task.
func Known(h *Handle) bool {
	if h == nil {
		return false
	}
	mu.Lock()
	defer mu.Unlock()
	return running[h.pid] == h
}
