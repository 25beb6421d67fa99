package daemon

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/atomic"

	"github.com/gamehive/observer/ierrors"
	"github.com/gamehive/observer/logger"
	"github.com/gamehive/observer/runtime/options"
	"github.com/gamehive/observer/runtime/syncutils"
)

var (
	// ErrDaemonStopped is returned if a worker is added to a daemon that was shut down.
	ErrDaemonStopped = ierrors.New("daemon was already stopped")
	// ErrDuplicateBackgroundWorker is returned if a worker with the same name is still registered.
	ErrDuplicateBackgroundWorker = ierrors.New("duplicate background worker")
)

// WorkerFunc is a background worker. It has to return once ctx is done.
type WorkerFunc = func(ctx context.Context)

// OrderedDaemon runs named background workers. On shutdown the workers with the highest shutdown order are stopped
// and awaited first.
type OrderedDaemon struct {
	workers []*worker
	running atomic.Bool
	stopped atomic.Bool
	mutex   syncutils.RWMutex

	stoppedCtx       context.Context
	stoppedCtxCancel context.CancelFunc
	stopOnce         sync.Once

	optsLogger *logger.Logger
}

type worker struct {
	name          string
	handler       WorkerFunc
	shutdownOrder int

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	done    chan struct{}
}

// New creates a new daemon.
func New(opts ...options.Option[OrderedDaemon]) *OrderedDaemon {
	stoppedCtx, stoppedCtxCancel := context.WithCancel(context.Background())

	return options.Apply(&OrderedDaemon{
		stoppedCtx:       stoppedCtx,
		stoppedCtxCancel: stoppedCtxCancel,
		optsLogger:       logger.NewNopLogger(),
	}, opts)
}

// WithLogger sets the logger that receives the worker lifecycle messages (at debug level).
func WithLogger(log *logger.Logger) options.Option[OrderedDaemon] {
	return func(d *OrderedDaemon) {
		if log != nil {
			d.optsLogger = log
		}
	}
}

// BackgroundWorker registers a worker. It is started right away if the daemon is already running.
// A name can only be reused once its previous worker has finished.
func (d *OrderedDaemon) BackgroundWorker(name string, handler WorkerFunc, shutdownOrder int) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped.Load() {
		return ierrors.Wrapf(ErrDaemonStopped, "failed to add %s", name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	newWorker := &worker{
		name:          name,
		handler:       handler,
		shutdownOrder: shutdownOrder,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}

	index := d.indexOf(name)
	switch {
	case index == -1:
		d.workers = append(d.workers, newWorker)
	case d.workers[index].isRunning() || !d.workers[index].started:
		cancel()

		return ierrors.Wrapf(ErrDuplicateBackgroundWorker, "%s is already registered", name)
	default:
		d.workers[index] = newWorker
	}

	if d.running.Load() {
		d.startWorker(newWorker)
	}

	return nil
}

// Start starts all registered workers. A daemon can not be started again after it was shut down.
func (d *OrderedDaemon) Start() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped.Load() || !d.running.CompareAndSwap(false, true) {
		return
	}

	for _, w := range d.workers {
		d.startWorker(w)
	}
}

// ShutdownAndWait stops the workers one shutdown order after the other and waits for all of them to finish.
func (d *OrderedDaemon) ShutdownAndWait() {
	d.stopOnce.Do(d.shutdown)
}

// ContextStopped returns a context that is done once the daemon is shutting down.
func (d *OrderedDaemon) ContextStopped() context.Context {
	return d.stoppedCtx
}

// GetRunningBackgroundWorkers returns the names of the workers that have not finished yet, lowest shutdown order first.
func (d *OrderedDaemon) GetRunningBackgroundWorkers() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	running := make([]*worker, 0, len(d.workers))
	for _, w := range d.workers {
		if w.isRunning() {
			running = append(running, w)
		}
	}

	sort.SliceStable(running, func(i, j int) bool {
		return running[i].shutdownOrder < running[j].shutdownOrder
	})

	names := make([]string, len(running))
	for i, w := range running {
		names[i] = w.name
	}

	return names
}

func (d *OrderedDaemon) shutdown() {
	d.optsLogger.Debug("Shutting down ...")

	d.mutex.Lock()
	d.stopped.Store(true)
	d.stoppedCtxCancel()
	groups := d.groupByShutdownOrder()
	d.mutex.Unlock()

	for _, group := range groups {
		for _, w := range group {
			d.optsLogger.Debugf("Stopping Background Worker: %s ...", w.name)
			w.cancel()
		}

		for _, w := range group {
			if w.started {
				<-w.done
			}
		}
	}

	d.running.Store(false)
	d.optsLogger.Debug("Shutting down ... done")
}

// groupByShutdownOrder must be called while holding the mutex. The groups are sorted by descending shutdown order.
func (d *OrderedDaemon) groupByShutdownOrder() [][]*worker {
	sorted := make([]*worker, len(d.workers))
	copy(sorted, d.workers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].shutdownOrder > sorted[j].shutdownOrder
	})

	groups := make([][]*worker, 0)
	for i, w := range sorted {
		if i == 0 || w.shutdownOrder != sorted[i-1].shutdownOrder {
			groups = append(groups, make([]*worker, 0, 1))
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], w)
	}

	return groups
}

// startWorker must be called while holding the mutex.
func (d *OrderedDaemon) startWorker(w *worker) {
	w.started = true

	go func() {
		defer close(w.done)

		d.optsLogger.Debugf("Starting Background Worker: %s ...", w.name)
		w.handler(w.ctx)
		d.optsLogger.Debugf("Stopping Background Worker: %s ... done", w.name)
	}()
}

// indexOf must be called while holding the mutex.
func (d *OrderedDaemon) indexOf(name string) int {
	for i, w := range d.workers {
		if w.name == name {
			return i
		}
	}

	return -1
}

// isRunning must be called while holding the mutex.
func (w *worker) isRunning() bool {
	if !w.started {
		return false
	}

	select {
	case <-w.done:
		return false
	default:
		return true
	}
}
