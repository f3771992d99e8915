// Package process runs an argument vector asynchronously and reports the
// outcome through a completion callback.
//
// Production code uses ExecSpawner; tests inject MockSpawner to record the
// vectors and replay canned results.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// Options tune how the process is started.
type Options struct {
	// TextMode decodes stdout and stderr as text. Binary output is not
	// supported, so TextMode only documents the caller's expectation.
	TextMode bool
	// Dir is the working directory. Empty inherits the caller's.
	Dir string
	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// Result is what a finished process reports.
type Result struct {
	// ExitCode is the exit status, or -1 when none was collected.
	ExitCode int
	// Signal is the terminating signal number, 0 if the process exited.
	Signal int
	Stdout string
	Stderr string
	// Err is set when the wait itself failed for a reason other than a
	// non-zero exit.
	Err error
}

// Malformed reports whether the result lacks a usable exit status.
func (r Result) Malformed() bool {
	return r.Err != nil || r.ExitCode < 0
}

// Success reports a clean zero exit.
func (r Result) Success() bool {
	return !r.Malformed() && r.ExitCode == 0
}

// Handle identifies a launched process.
type Handle interface {
	// PID returns the process ID, or 0 when unknown.
	PID() int
}

// Spawner starts argv without waiting for it. onComplete is called exactly
// once, from another goroutine, after the process has exited. A non-nil
// error means the process was never started and onComplete will not run.
type Spawner interface {
	Spawn(ctx context.Context, argv []string, opts Options, onComplete func(Result)) (Handle, error)
}

// ExecSpawner starts processes with os/exec.
type ExecSpawner struct{}

// NewExecSpawner returns a new ExecSpawner.
func NewExecSpawner() *ExecSpawner {
	return &ExecSpawner{}
}

// Spawn starts argv and waits for it in a background goroutine.
func (s *ExecSpawner) Spawn(ctx context.Context, argv []string, opts Options, onComplete func(Result)) (Handle, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	if onComplete == nil {
		return nil, errors.New("completion callback is required")
	}

	// The process outlives the request that launched it, so ctx only
	// guards the start, not the wait.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	h := &execHandle{pid: cmd.Process.Pid}
	go func() {
		err := cmd.Wait()
		onComplete(resultOf(cmd, err, stdout.String(), stderr.String()))
	}()
	return h, nil
}

func resultOf(cmd *exec.Cmd, waitErr error, stdout, stderr string) Result {
	res := Result{ExitCode: -1, Stdout: stdout, Stderr: stderr}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		res.Err = waitErr
	}

	state := cmd.ProcessState
	if state == nil {
		if res.Err == nil {
			res.Err = errors.New("process state unavailable")
		}
		return res
	}
	res.ExitCode = state.ExitCode()
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		res.Signal = int(ws.Signal())
	}
	return res
}

type execHandle struct {
	pid int
}

func (h *execHandle) PID() int {
	return h.pid
}

var _ Spawner = (*ExecSpawner)(nil)
