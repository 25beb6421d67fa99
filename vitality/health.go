package vitality

import (
	"github.com/gamehive/observer/ierrors"
	"github.com/gamehive/observer/runtime/options"
	"github.com/gamehive/observer/runtime/syncutils"
	"github.com/gamehive/observer/runtime/typeutils"
)

const (
	// DefaultMax is the default maximum health.
	DefaultMax = 100
	// DefaultDrainPerTick is the default amount of health that is lost per drain tick.
	DefaultDrainPerTick = 2
)

// Health is a depletable value that drains on every tick and is restored to its maximum when its source levels up.
//
// The value is not clamped: draining below zero is possible and it is up to the caller to stop ticking.
type Health struct {
	// Events contains the events of the Health.
	Events *Events

	current      float64
	currentMutex syncutils.RWMutex

	subscription      *subscription
	subscriptionMutex syncutils.RWMutex

	optsMax          float64
	optsDrainPerTick float64
	optsSource       LevelUpSource
}

// NewHealth creates a Health that starts at its maximum. It does not subscribe to its source until Attach is called.
func NewHealth(opts ...options.Option[Health]) (*Health, error) {
	h := options.Apply(&Health{
		Events:           NewEvents(),
		optsMax:          DefaultMax,
		optsDrainPerTick: DefaultDrainPerTick,
	}, opts)

	if h.optsMax <= 0 {
		return nil, ierrors.Wrapf(ErrInvalidMax, "got %g", h.optsMax)
	}
	if h.optsDrainPerTick <= 0 {
		return nil, ierrors.Wrapf(ErrInvalidDrain, "got %g", h.optsDrainPerTick)
	}

	h.current = h.optsMax

	return h, nil
}

// Reset restores the health to its maximum.
func (h *Health) Reset() {
	h.Events.Restored.Trigger(h.reset())
}

// Drain removes one tick worth of health and returns what is left.
func (h *Health) Drain() (current float64) {
	previous, current := h.drain()

	h.Events.Drained.Trigger(current)

	if previous > 0 && current <= 0 {
		h.Events.Depleted.Trigger()
	}

	return current
}

// Current returns the current health.
func (h *Health) Current() float64 {
	h.currentMutex.RLock()
	defer h.currentMutex.RUnlock()

	return h.current
}

// IsDepleted returns true if the health is zero or below.
func (h *Health) IsDepleted() bool {
	return h.Current() <= 0
}

// Max returns the maximum health.
func (h *Health) Max() float64 {
	return h.optsMax
}

// DrainPerTick returns the amount of health that is lost per drain tick.
func (h *Health) DrainPerTick() float64 {
	return h.optsDrainPerTick
}

// Attach subscribes to the source that was configured with WithSource. Without a source this is a no-op.
func (h *Health) Attach() {
	h.AttachTo(h.optsSource)
}

// AttachTo subscribes the Health to the level ups of the given source. Attaching to the current source again is a
// no-op, attaching to a different source moves the subscription and a nil source is ignored. Sources are told apart
// with ==, a source of a type that is not comparable always counts as a different one.
func (h *Health) AttachTo(source LevelUpSource) {
	if typeutils.IsInterfaceNil(source) {
		return
	}

	h.subscriptionMutex.Lock()
	defer h.subscriptionMutex.Unlock()

	if h.subscription != nil {
		if typeutils.IsComparableEqual(h.subscription.source, source) {
			return
		}

		h.subscription.hook.Unhook()
	}

	newSubscription := &subscription{source: source}
	newSubscription.hook = source.Subscribe(func(int) {
		h.onLevelUp(newSubscription)
	})

	h.subscription = newSubscription
}

// Detach removes the subscription. Once it returns, level ups no longer change the health. Detaching a Health that
// is not attached is a no-op.
func (h *Health) Detach() {
	h.subscriptionMutex.Lock()
	defer h.subscriptionMutex.Unlock()

	if h.subscription == nil {
		return
	}

	h.subscription.hook.Unhook()
	h.subscription = nil
}

// State returns whether the Health currently listens to a source.
func (h *Health) State() SubscriptionState {
	h.subscriptionMutex.RLock()
	defer h.subscriptionMutex.RUnlock()

	if h.subscription == nil {
		return Unsubscribed
	}

	return Subscribed
}

// onLevelUp resets the health if the given subscription is still the active one.
func (h *Health) onLevelUp(notifiedSubscription *subscription) {
	restored, isActive := func() (float64, bool) {
		h.subscriptionMutex.RLock()
		defer h.subscriptionMutex.RUnlock()

		if h.subscription != notifiedSubscription {
			return 0, false
		}

		return h.reset(), true
	}()

	if isActive {
		h.Events.Restored.Trigger(restored)
	}
}

func (h *Health) reset() (restored float64) {
	h.currentMutex.Lock()
	defer h.currentMutex.Unlock()

	h.current = h.optsMax

	return h.current
}

func (h *Health) drain() (previous, current float64) {
	h.currentMutex.Lock()
	defer h.currentMutex.Unlock()

	previous = h.current
	h.current -= h.optsDrainPerTick

	return previous, h.current
}

// WithMax sets the maximum health.
func WithMax(maxHealth float64) options.Option[Health] {
	return func(h *Health) {
		h.optsMax = maxHealth
	}
}

// WithDrainPerTick sets the amount of health that is lost per drain tick.
func WithDrainPerTick(drainPerTick float64) options.Option[Health] {
	return func(h *Health) {
		h.optsDrainPerTick = drainPerTick
	}
}

// WithSource sets the publisher that Attach subscribes to.
func WithSource(source LevelUpSource) options.Option[Health] {
	return func(h *Health) {
		h.optsSource = source
	}
}
