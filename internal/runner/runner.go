package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hookchain/hook-engine/internal/invoker"
	"hookchain/hook-engine/internal/metrics"
	"hookchain/hook-engine/internal/retcode"
	"hookchain/hook-engine/pkg/scheduler"
	"hookchain/hook-engine/pkg/types"
)

// Default chain timing bounds.
const (
	DefaultWarnAfter = 5 * time.Minute
	DefaultKillAfter = time.Hour
)

// Options bounds one chain execution. WarnAfter only triggers a warn-level
// log entry; KillAfter abandons the chain with a SystemError.
type Options struct {
	WarnAfter time.Duration
	KillAfter time.Duration
}

func (o Options) withDefaults() Options {
	if o.WarnAfter <= 0 {
		o.WarnAfter = DefaultWarnAfter
	}
	if o.KillAfter <= 0 {
		o.KillAfter = DefaultKillAfter
	}
	return o
}

// Runner executes hook chains on an injected scheduler.
type Runner struct {
	invoker  invoker.Invoker
	sched    scheduler.Scheduler
	log      *zap.Logger
	recorder *metrics.Recorder
}

// New creates a Runner. The logger may be nil.
func New(inv invoker.Invoker, sched scheduler.Scheduler, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{invoker: inv, sched: sched, log: log}
}

// WithRecorder attaches a duration recorder; each hook execution contributes
// one sample.
func (r *Runner) WithRecorder(rec *metrics.Recorder) *Runner {
	r.recorder = rec
	return r
}

// Execution is the handle for one running chain.
type Execution struct {
	ID        string
	StartedAt time.Time
	outcome   chan types.Outcome
}

// Wait blocks until the chain resolves or ctx is done. It never returns an
// error; an aborted wait is reified as a SystemError outcome.
func (e *Execution) Wait(ctx context.Context) types.Outcome {
	select {
	case out := <-e.outcome:
		return out
	case <-ctx.Done():
		return types.SystemError(NewChainError("hook chain wait aborted", ctx.Err()).Error())
	}
}

// RunAsync starts the chain and returns a handle without blocking. The merged
// environment is systemEnv first, hookParams second, so parameters win on
// name collisions.
func (r *Runner) RunAsync(hooks types.HookSet, hookParams, systemEnv types.EnvPairSet, opts Options) *Execution {
	opts = opts.withDefaults()

	ex := &Execution{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		outcome:   make(chan types.Outcome, 1),
	}

	merged := systemEnv.Merge(hookParams)
	env := merged.ToMap()

	r.log.Info("hook chain started",
		zap.String("chain_id", ex.ID),
		zap.String("base_path", hooks.BasePath),
		zap.Int("hooks", hooks.Len()),
	)
	r.log.Debug("hook chain environment", zap.String("chain_id", ex.ID), zap.String("env", merged.Describe()))

	// The pool is non-blocking; when it is saturated both tasks fall back to
	// plain goroutines so a full pool degrades throughput, never liveness.
	done := make(chan types.Outcome, 1)
	if err := r.sched.Submit(func() { done <- r.runChain(ex.ID, hooks, env) }); err != nil {
		r.log.Debug("pool rejected chain fold, running detached", zap.String("chain_id", ex.ID), zap.Error(err))
		go func() { done <- r.runChain(ex.ID, hooks, env) }()
	}
	if err := r.sched.Submit(func() { r.watch(ex, done, opts) }); err != nil {
		go r.watch(ex, done, opts)
	}
	return ex
}

// RunSync runs the chain and blocks until it resolves, KillAfter elapses, or
// ctx is done. It never returns an error: timeouts and internal faults come
// back as SystemError outcomes.
func (r *Runner) RunSync(ctx context.Context, hooks types.HookSet, hookParams, systemEnv types.EnvPairSet, opts Options) types.Outcome {
	return r.RunAsync(hooks, hookParams, systemEnv, opts).Wait(ctx)
}

// watch resolves the execution with either the fold's outcome or a timeout
// SystemError, whichever comes first, and emits the slow-chain warning.
func (r *Runner) watch(ex *Execution, done <-chan types.Outcome, opts Options) {
	timer := time.NewTimer(opts.KillAfter)
	defer timer.Stop()

	var out types.Outcome
	select {
	case out = <-done:
	case <-timer.C:
		// The fold keeps running detached; its eventual value is discarded.
		// The in-flight child process is not killed (see package doc).
		out = types.SystemError(fmt.Sprintf("hook chain %s timed out after %s", ex.ID, opts.KillAfter))
		r.log.Error("hook chain timed out",
			zap.String("chain_id", ex.ID),
			zap.Duration("kill_after", opts.KillAfter),
		)
	}

	if elapsed := time.Since(ex.StartedAt); elapsed > opts.WarnAfter {
		r.log.Warn("hook chain exceeded warn threshold",
			zap.String("chain_id", ex.ID),
			zap.Duration("elapsed", elapsed),
			zap.Duration("warn_after", opts.WarnAfter),
		)
	}

	ex.outcome <- out
}

// runChain folds left over the hook list from an implicit Ok, stopping at the
// first outcome that is a stop variant. A hook never starts before the
// previous hook's classified outcome is known.
func (r *Runner) runChain(chainID string, hooks types.HookSet, env map[string]string) (out types.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = types.SystemError(NewChainError("internal fault in hook chain", fmt.Errorf("panic: %v", p)).Error())
		}
	}()

	acc := types.Ok("", "")
	for _, name := range hooks.HookNames {
		path := hooks.PathFor(name)

		start := time.Now()
		res, err := r.invoker.Invoke(types.Command{Path: path, Env: env}).Await(context.Background())
		elapsed := time.Since(start)
		if r.recorder != nil {
			r.recorder.Record(elapsed)
		}
		if err != nil {
			return types.SystemError(NewChainError(fmt.Sprintf("awaiting hook '%s'", path), err).Error())
		}

		acc = retcode.Classify(path, res)
		switch acc.Kind {
		case types.OutcomeOk:
			r.log.Debug("hook succeeded",
				zap.String("chain_id", chainID),
				zap.String("hook", path),
				zap.Duration("elapsed", elapsed),
			)
		case types.OutcomeWarning:
			r.log.Warn("hook warned",
				zap.String("chain_id", chainID),
				zap.String("hook", path),
				zap.Int("exit_code", acc.Code),
				zap.String("stderr", acc.Stderr),
			)
		default:
			r.log.Error("hook stopped the chain",
				zap.String("chain_id", chainID),
				zap.String("hook", path),
				zap.Int("exit_code", acc.Code),
				zap.String("message", acc.Message),
			)
			return acc
		}
	}
	return acc
}
