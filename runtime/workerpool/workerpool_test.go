package workerpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestWorkerPool_SubmitAndShutdown(t *testing.T) {
	wp := New(t.Name(), WithWorkerCount(2)).Start()

	executed := atomic.NewInt64(0)
	for i := 0; i < 20; i++ {
		require.True(t, wp.Submit(func() {
			time.Sleep(time.Millisecond)
			executed.Inc()
		}))
	}

	wp.PendingTasksCounter.WaitIsZero()
	require.Equal(t, int64(20), executed.Load())

	wp.Shutdown()
	require.False(t, wp.Submit(func() { executed.Inc() }))
	require.Equal(t, int64(20), executed.Load())
}

func TestWorkerPool_SingleWorkerKeepsOrder(t *testing.T) {
	wp := New(t.Name(), WithWorkerCount(1)).Start()
	defer wp.Shutdown()

	results := make(chan int, 10)
	for i := 0; i < 10; i++ {
		value := i
		wp.Submit(func() { results <- value })
	}
	wp.PendingTasksCounter.WaitIsZero()
	close(results)

	expected := 0
	for value := range results {
		require.Equal(t, expected, value)
		expected++
	}
	require.Equal(t, 10, expected)
}

func TestWorkerPool_PanicHandler(t *testing.T) {
	recovered := make(chan any, 1)
	wp := New(t.Name(), WithWorkerCount(1), WithPanicHandler(func(r any) {
		recovered <- r
	})).Start()
	defer wp.Shutdown()

	wp.Submit(func() { panic("boom") })

	select {
	case r := <-recovered:
		require.Equal(t, "boom", r)
	case <-time.After(time.Second):
		t.Fatal("panic handler was not called")
	}

	wp.PendingTasksCounter.WaitIsZero()
	require.True(t, wp.Submit(func() {}), "the pool keeps running after a panic")
}

func TestWorkerPool_StartIsIdempotent(t *testing.T) {
	wp := New(t.Name())
	require.False(t, wp.Submit(func() {}), "a pool that was not started rejects tasks")

	require.Same(t, wp, wp.Start().Start())
	require.True(t, wp.Submit(func() {}))

	wp.Shutdown().Shutdown()
	require.False(t, wp.Submit(func() {}))
}
