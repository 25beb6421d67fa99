package event

// Event is an event with no generic parameters.
type Event struct {
	*event[func()]
}

// New creates a new event with no generic parameters.
func New(opts ...Option) *Event {
	return &Event{
		event: newEvent[func()](opts...),
	}
}

// Trigger invokes the hooked callbacks.
func (e *Event) Trigger() {
	e.forEachHook(func(hook *Hook[func()]) {
		hook.submit(hook.trigger)
	})
}

// LinkTo links the event to the given target event (nil unlinks).
func (e *Event) LinkTo(target *Event) {
	e.linkTo(target, e.Trigger)
}

// Event1 is an event with 1 generic parameter.
type Event1[T1 any] struct {
	*event[func(T1)]
}

// New1 creates a new event with 1 generic parameter.
func New1[T1 any](opts ...Option) *Event1[T1] {
	return &Event1[T1]{
		event: newEvent[func(T1)](opts...),
	}
}

// Trigger invokes the hooked callbacks with the given parameter.
func (e *Event1[T1]) Trigger(arg1 T1) {
	e.forEachHook(func(hook *Hook[func(T1)]) {
		hook.submit(func() { hook.trigger(arg1) })
	})
}

// LinkTo links the event to the given target event (nil unlinks).
func (e *Event1[T1]) LinkTo(target *Event1[T1]) {
	e.linkTo(target, e.Trigger)
}

// Event2 is an event with 2 generic parameters.
type Event2[T1, T2 any] struct {
	*event[func(T1, T2)]
}

// New2 creates a new event with 2 generic parameters.
func New2[T1, T2 any](opts ...Option) *Event2[T1, T2] {
	return &Event2[T1, T2]{
		event: newEvent[func(T1, T2)](opts...),
	}
}

// Trigger invokes the hooked callbacks with the given parameters.
func (e *Event2[T1, T2]) Trigger(arg1 T1, arg2 T2) {
	e.forEachHook(func(hook *Hook[func(T1, T2)]) {
		hook.submit(func() { hook.trigger(arg1, arg2) })
	})
}

// LinkTo links the event to the given target event (nil unlinks).
func (e *Event2[T1, T2]) LinkTo(target *Event2[T1, T2]) {
	e.linkTo(target, e.Trigger)
}
