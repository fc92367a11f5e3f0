package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	pool, err := NewPool(4)
	require.NoError(t, err)
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func() {
			defer wg.Done()
			mu.Lock()
			seen++
			mu.Unlock()
		}))
	}
	wg.Wait()

	assert.Equal(t, 20, seen)
}

func TestPoolSubmitDoesNotBlockOnSlowTasks(t *testing.T) {
	pool, err := NewPool(8)
	require.NoError(t, err)
	defer pool.Release()

	start := time.Now()
	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		time.Sleep(300 * time.Millisecond)
		close(done)
	}))
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	<-done
}

func TestNewPoolDefaultsNonPositiveSize(t *testing.T) {
	pool, err := NewPool(0)
	require.NoError(t, err)
	defer pool.Release()

	require.NoError(t, pool.Submit(func() {}))
}

func TestPoolSubmitRejectsWhenSaturated(t *testing.T) {
	pool, err := NewPool(1)
	require.NoError(t, err)
	defer pool.Release()

	release := make(chan struct{})
	require.NoError(t, pool.Submit(func() { <-release }))
	// Let the single worker pick the task up before probing saturation.
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	err = pool.Submit(func() {})
	close(release)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond, "a saturated pool must reject, not block")
}

func TestPoolSubmitAfterRelease(t *testing.T) {
	pool, err := NewPool(2)
	require.NoError(t, err)
	pool.Release()

	assert.Error(t, pool.Submit(func() {}))
}
