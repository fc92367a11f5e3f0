// Package scheduler provides the work-submission interface the engine runs
// on. The pool is constructed once at process start, injected into the
// components that need it, and released at process exit; nothing reconfigures
// it mid-flight.
package scheduler

import (
	"github.com/panjf2000/ants/v2"
)

// DefaultPoolSize is sized for process-spawning workloads: most submitted
// tasks spend their time blocked on a child process wait, not on CPU, so the
// pool must tolerate many simultaneously parked tasks.
const DefaultPoolSize = 1024

// Scheduler accepts work for asynchronous execution. Submit must not block
// the caller while the task runs.
type Scheduler interface {
	Submit(task func()) error
	Release()
}

// Pool is an ants-backed Scheduler with a bounded number of workers.
type Pool struct {
	pool *ants.Pool
}

// NewPool creates a pool with the given worker count. A non-positive size
// falls back to DefaultPoolSize. The pool is non-blocking: a saturated pool
// rejects the submission instead of parking the caller, so callers on the
// hook execution path can always make progress.
func NewPool(size int) (*Pool, error) {
	if size <= 0 {
		size = DefaultPoolSize
	}
	p, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p}, nil
}

// Submit schedules the task on the pool. It never blocks; when all workers
// are busy it returns ants.ErrPoolOverload and the task does not run.
func (p *Pool) Submit(task func()) error {
	return p.pool.Submit(task)
}

// Release shuts the pool down. Pending tasks are abandoned.
func (p *Pool) Release() {
	p.pool.Release()
}

// Running returns the number of currently running workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}
