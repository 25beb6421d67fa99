package event

import (
	"go.uber.org/atomic"

	"github.com/gamehive/observer/runtime/options"
	"github.com/gamehive/observer/runtime/workerpool"
)

// Hook is a container that holds a trigger function and its trigger settings. It is the handle that is used to
// remove the callback from its event again.
type Hook[TriggerFunc any] struct {
	id       uint64
	event    *event[TriggerFunc]
	trigger  TriggerFunc
	unhooked atomic.Bool

	*triggerSettings
}

// newHook creates a new Hook.
func newHook[TriggerFunc any](id uint64, event *event[TriggerFunc], trigger TriggerFunc, opts ...Option) *Hook[TriggerFunc] {
	return &Hook[TriggerFunc]{
		id:              id,
		event:           event,
		trigger:         trigger,
		triggerSettings: options.Apply(new(triggerSettings), opts),
	}
}

// WorkerPool returns the worker pool that is used to trigger the callback (nil means in-place).
func (h *Hook[TriggerFunc]) WorkerPool() *workerpool.WorkerPool {
	if has, workerPool := h.hasWorkerPool(); has {
		return workerPool
	}

	return h.event.WorkerPool()
}

// Unhook removes the callback from the event. Unhooking a nil or an already removed Hook is a no-op.
func (h *Hook[TriggerFunc]) Unhook() {
	if h == nil || !h.unhooked.CompareAndSwap(false, true) {
		return
	}

	h.event.hooks.Delete(h.id)
}

// IsHooked returns true as long as the callback is registered with its event.
func (h *Hook[TriggerFunc]) IsHooked() bool {
	return h != nil && !h.unhooked.Load()
}

// submit runs the given call in the hook's worker pool or in place.
func (h *Hook[TriggerFunc]) submit(call func()) {
	if workerPool := h.WorkerPool(); workerPool != nil {
		workerPool.Submit(func() {
			if h.IsHooked() {
				call()
			}
		})

		return
	}

	call()
}
