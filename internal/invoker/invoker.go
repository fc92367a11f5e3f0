// Package invoker wraps process spawning behind an asynchronous handle.
//
// Invoke submits the spawn to the injected scheduler and returns immediately;
// the handle resolves once the child has exited and both output streams are
// fully drained. Spawn failures resolve the handle with the sentinel exit
// code instead of surfacing an error, so the classifier can still produce a
// well-typed Outcome.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"go.uber.org/zap"

	"hookchain/hook-engine/pkg/scheduler"
	"hookchain/hook-engine/pkg/types"
)

// Invoker starts one external program per call and resolves a Handle with its
// result without blocking the caller's thread of control.
type Invoker interface {
	Invoke(cmd types.Command) *Handle
}

// Handle is a single-resolution future for one command's result. The
// completion channel is buffered, so the producing task never blocks even if
// the handle is abandoned.
type Handle struct {
	ch chan types.CommandResult
}

func newHandle() *Handle {
	return &Handle{ch: make(chan types.CommandResult, 1)}
}

// Await blocks until the result is available or ctx is done. It may be called
// at most once; the result is consumed from the handle.
func (h *Handle) Await(ctx context.Context) (types.CommandResult, error) {
	select {
	case res := <-h.ch:
		return res, nil
	case <-ctx.Done():
		return types.CommandResult{}, ctx.Err()
	}
}

func (h *Handle) resolve(res types.CommandResult) {
	h.ch <- res
}

// NewHandle returns an unresolved handle together with the function that
// resolves it. Intended for alternative Invoker implementations.
func NewHandle() (*Handle, func(types.CommandResult)) {
	h := newHandle()
	return h, h.resolve
}

// ExecInvoker spawns commands with os/exec on a shared scheduler.
type ExecInvoker struct {
	sched scheduler.Scheduler
	log   *zap.Logger
}

// NewExecInvoker creates an invoker running on the given scheduler.
func NewExecInvoker(sched scheduler.Scheduler, log *zap.Logger) *ExecInvoker {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecInvoker{sched: sched, log: log}
}

// Invoke spawns cmd asynchronously. The returned handle resolves exactly
// once: with the process result, or with the sentinel exit code if the spawn
// could not happen at all.
func (e *ExecInvoker) Invoke(cmd types.Command) *Handle {
	h := newHandle()
	if err := e.sched.Submit(func() { h.resolve(e.run(cmd)) }); err != nil {
		// Saturated pool. The spawn spends its life blocked on the child's
		// exit, so running it on a plain goroutine keeps the chain moving
		// instead of failing a valid hook.
		e.log.Debug("pool rejected spawn, running detached", zap.String("path", cmd.Path), zap.Error(err))
		go func() { h.resolve(e.run(cmd)) }()
	}
	return h
}

func (e *ExecInvoker) run(cmd types.Command) types.CommandResult {
	c := exec.Command(cmd.Path, cmd.Args...)
	// The command's env map is the complete child environment. Always set it,
	// even when empty: a nil Env would make os/exec inherit this process's
	// environment.
	c.Env = types.Environ(cmd.Env)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	// Run waits for process exit and drains both streams before returning,
	// so a resolved handle never leaves the child running.
	err := c.Run()

	res := types.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		// Covers both non-zero exits and signal deaths (negative code).
		res.ExitCode = exitErr.ExitCode()
	default:
		// Executable missing, not executable, permission denied: the spawn
		// never happened. Report the sentinel and keep the OS error text for
		// diagnostics.
		res.ExitCode = types.SentinelExitCode
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
		e.log.Debug("spawn failed", zap.String("path", cmd.Path), zap.Error(err))
	}

	e.log.Debug("process finished",
		zap.String("path", cmd.Path),
		zap.Int("exit_code", res.ExitCode),
	)
	return res
}
