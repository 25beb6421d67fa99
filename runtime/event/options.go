package event

import (
	"github.com/gamehive/observer/lo"
	"github.com/gamehive/observer/runtime/options"
	"github.com/gamehive/observer/runtime/workerpool"
)

// WithWorkerPool sets the worker pool that is used to process the trigger (nil forces execution in-place).
func WithWorkerPool(workerPool *workerpool.WorkerPool) Option {
	if workerPool == nil {
		return func(triggerSettings *triggerSettings) {
			triggerSettings.workerPool = noWorkerPool
		}
	}

	return func(triggerSettings *triggerSettings) {
		triggerSettings.workerPool = workerPool
	}
}

// triggerSettings holds the settings of an event or a single Hook.
type triggerSettings struct {
	workerPool *workerpool.WorkerPool
}

// WorkerPool returns the worker pool that shall be used to execute the triggered function.
func (t *triggerSettings) WorkerPool() *workerpool.WorkerPool {
	return lo.Return2(t.hasWorkerPool())
}

// hasWorkerPool returns if a worker pool (and which one) is set.
func (t *triggerSettings) hasWorkerPool() (bool, *workerpool.WorkerPool) {
	if t.workerPool == noWorkerPool {
		return true, nil
	}

	return t.workerPool != nil, t.workerPool
}

// noWorkerPool is a special value that indicates that no worker pool shall be used (forced).
var noWorkerPool = &workerpool.WorkerPool{}

// Option is a function that configures the triggerSettings.
type Option = options.Option[triggerSettings]
