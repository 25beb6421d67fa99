package workerpool

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/panjf2000/ants/v2"

	"github.com/gamehive/observer/runtime/options"
	"github.com/gamehive/observer/runtime/syncutils"
)

// WorkerPool executes submitted tasks on a bounded set of goroutines managed by ants.
type WorkerPool struct {
	Name                string
	PendingTasksCounter *syncutils.Counter

	workerCount  int
	panicHandler func(recovered any)
	pool         *ants.Pool
	isRunning    bool
	mutex        syncutils.RWMutex
}

// New creates a stopped WorkerPool. The default worker count is 2*GOMAXPROCS.
func New(name string, opts ...options.Option[WorkerPool]) *WorkerPool {
	return options.Apply(&WorkerPool{
		Name:                name,
		PendingTasksCounter: syncutils.NewCounter(),
		workerCount:         2 * runtime.NumCPU(),
	}, opts, func(w *WorkerPool) {
		if w.panicHandler == nil {
			w.panicHandler = func(recovered any) {
				fmt.Fprintf(os.Stderr, "recovered from panic in WorkerPool '%s': %v\n%s", w.Name, recovered, debug.Stack())
			}
		}
	})
}

// Start spawns the underlying pool. Starting a running pool is a no-op.
func (w *WorkerPool) Start() *WorkerPool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.isRunning {
		return w
	}

	pool, err := ants.NewPool(w.workerCount, ants.WithPanicHandler(w.panicHandler))
	if err != nil {
		panic(fmt.Sprintf("failed to create worker pool '%s': %s", w.Name, err))
	}

	w.pool = pool
	w.isRunning = true

	return w
}

// Submit queues the task and blocks while all workers are busy. It returns false if the pool is not running.
func (w *WorkerPool) Submit(task func()) (submitted bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	if !w.isRunning {
		return false
	}

	w.PendingTasksCounter.Increase()
	if err := w.pool.Submit(func() {
		defer w.PendingTasksCounter.Decrease()

		task()
	}); err != nil {
		w.PendingTasksCounter.Decrease()

		return false
	}

	return true
}

// Shutdown stops accepting tasks, waits for the pending ones and releases the workers.
func (w *WorkerPool) Shutdown() *WorkerPool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.isRunning {
		return w
	}

	w.isRunning = false
	w.PendingTasksCounter.WaitIsZero()
	w.pool.Release()

	return w
}

// WithWorkerCount sets the amount of goroutines that execute tasks.
func WithWorkerCount(workerCount int) options.Option[WorkerPool] {
	return func(w *WorkerPool) {
		if workerCount > 0 {
			w.workerCount = workerCount
		}
	}
}

// WithPanicHandler sets the function that receives values recovered from panicking tasks.
func WithPanicHandler(panicHandler func(recovered any)) options.Option[WorkerPool] {
	return func(w *WorkerPool) {
		w.panicHandler = panicHandler
	}
}
