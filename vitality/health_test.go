package vitality_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamehive/observer/progression"
	"github.com/gamehive/observer/runtime/event"
	"github.com/gamehive/observer/runtime/options"
	"github.com/gamehive/observer/vitality"
)

// capturingSource hands out real hooks but also remembers the callbacks, so tests can replay a notification that was
// already in flight.
type capturingSource struct {
	levelUp   *event.Event1[int]
	callbacks []func(int)
}

func newCapturingSource() *capturingSource {
	return &capturingSource{levelUp: event.New1[int]()}
}

func (c *capturingSource) Subscribe(callback func(newLevel int)) *event.Hook[func(int)] {
	c.callbacks = append(c.callbacks, callback)

	return c.levelUp.Hook(callback)
}

// taggedSource is a value type that can not be compared with ==.
type taggedSource struct {
	level *progression.Level
	tags  []string
}

func (s taggedSource) Subscribe(callback func(newLevel int)) *event.Hook[func(int)] {
	return s.level.Subscribe(callback)
}

func newLevel(t *testing.T) *progression.Level {
	level, err := progression.NewLevel()
	require.NoError(t, err)

	return level
}

func newHealth(t *testing.T, opts ...options.Option[vitality.Health]) *vitality.Health {
	health, err := vitality.NewHealth(opts...)
	require.NoError(t, err)

	return health
}

func TestNewHealth(t *testing.T) {
	health := newHealth(t)
	require.Equal(t, float64(vitality.DefaultMax), health.Current())
	require.Equal(t, float64(vitality.DefaultMax), health.Max())
	require.Equal(t, float64(vitality.DefaultDrainPerTick), health.DrainPerTick())
	require.Equal(t, vitality.Unsubscribed, health.State())

	_, err := vitality.NewHealth(vitality.WithMax(0))
	require.ErrorIs(t, err, vitality.ErrInvalidMax)

	_, err = vitality.NewHealth(vitality.WithDrainPerTick(-2))
	require.ErrorIs(t, err, vitality.ErrInvalidDrain)
}

func TestHealth_Drain(t *testing.T) {
	health := newHealth(t)

	for i := 0; i < 10; i++ {
		health.Drain()
	}

	require.Equal(t, float64(80), health.Current())
}

func TestHealth_DrainBelowZero(t *testing.T) {
	health := newHealth(t, vitality.WithMax(5), vitality.WithDrainPerTick(2))

	depletedCount := 0
	health.Events.Depleted.Hook(func() { depletedCount++ })

	drained := make([]float64, 0)
	health.Events.Drained.Hook(func(current float64) { drained = append(drained, current) })

	for i := 0; i < 4; i++ {
		health.Drain()
	}

	require.Equal(t, []float64{3, 1, -1, -3}, drained)
	require.Equal(t, float64(-3), health.Current())
	require.True(t, health.IsDepleted())
	require.Equal(t, 1, depletedCount)

	health.Reset()
	require.False(t, health.IsDepleted())

	health.Drain()
	health.Drain()
	health.Drain()
	require.Equal(t, 2, depletedCount)
}

func TestHealth_Reset(t *testing.T) {
	health := newHealth(t)

	restored := make([]float64, 0)
	health.Events.Restored.Hook(func(current float64) { restored = append(restored, current) })

	health.Drain()
	health.Reset()
	health.Reset()

	require.Equal(t, float64(100), health.Current())
	require.Equal(t, []float64{100, 100}, restored)
}

func TestHealth_ResetOnLevelUp(t *testing.T) {
	level := newLevel(t)
	health := newHealth(t, vitality.WithSource(level))

	health.Attach()
	require.Equal(t, vitality.Subscribed, health.State())

	for i := 0; i < 30; i++ {
		health.Drain()
	}
	require.Equal(t, float64(40), health.Current())

	require.NoError(t, level.GainExperience(60))
	require.Equal(t, float64(40), health.Current())

	require.NoError(t, level.GainExperience(60))
	require.Equal(t, float64(100), health.Current())
}

func TestHealth_DetachStopsReset(t *testing.T) {
	level := newLevel(t)
	health := newHealth(t, vitality.WithSource(level))

	health.Attach()
	health.Detach()
	require.Equal(t, vitality.Unsubscribed, health.State())

	health.Drain()
	require.NoError(t, level.GainExperience(250))
	require.Equal(t, float64(98), health.Current())
	require.Zero(t, level.Events.LevelUp.HookCount())
}

func TestHealth_DetachIsIdempotent(t *testing.T) {
	level := newLevel(t)

	otherCalls := 0
	level.Subscribe(func(int) { otherCalls++ })

	health := newHealth(t, vitality.WithSource(level))
	health.Detach()

	health.Attach()
	health.Detach()
	health.Detach()

	require.NoError(t, level.GainExperience(100))
	require.Equal(t, 1, otherCalls)
	require.Equal(t, vitality.Unsubscribed, health.State())
}

func TestHealth_AttachIsIdempotent(t *testing.T) {
	level := newLevel(t)
	health := newHealth(t, vitality.WithSource(level))

	restoredCount := 0
	health.Events.Restored.Hook(func(float64) { restoredCount++ })

	health.Attach()
	health.Attach()
	health.AttachTo(level)

	require.Equal(t, 1, level.Events.LevelUp.HookCount())

	require.NoError(t, level.GainExperience(100))
	require.Equal(t, 1, restoredCount)
}

func TestHealth_AttachWithoutSource(t *testing.T) {
	health := newHealth(t)

	health.Attach()
	health.AttachTo(nil)

	var nilLevel *progression.Level
	health.AttachTo(nilLevel)

	require.Equal(t, vitality.Unsubscribed, health.State())
}

func TestHealth_AttachToOtherSource(t *testing.T) {
	first := newLevel(t)
	second := newLevel(t)
	health := newHealth(t, vitality.WithSource(first))

	health.Attach()
	health.AttachTo(second)

	require.Zero(t, first.Events.LevelUp.HookCount())
	require.Equal(t, 1, second.Events.LevelUp.HookCount())

	health.Drain()
	require.NoError(t, first.GainExperience(100))
	require.Equal(t, float64(98), health.Current())

	require.NoError(t, second.GainExperience(100))
	require.Equal(t, float64(100), health.Current())
}

func TestHealth_AttachToNonComparableSource(t *testing.T) {
	level := newLevel(t)
	source := taggedSource{level: level, tags: []string{"boss"}}
	health := newHealth(t, vitality.WithSource(source))

	require.NotPanics(t, func() {
		health.Attach()
		health.Attach()
	})

	// the second attach replaced the subscription instead of adding one
	require.Equal(t, vitality.Subscribed, health.State())
	require.Equal(t, 1, level.Events.LevelUp.HookCount())

	health.Drain()
	require.NoError(t, level.GainExperience(100))
	require.Equal(t, float64(100), health.Current())
}

func TestHealth_InFlightNotificationAfterDetach(t *testing.T) {
	source := newCapturingSource()
	health := newHealth(t, vitality.WithSource(source))

	health.Attach()
	require.Len(t, source.callbacks, 1)

	health.Drain()
	health.Detach()

	// a dispatch that picked up the callback before the detach must not reach the health anymore
	source.callbacks[0](1)
	require.Equal(t, float64(98), health.Current())

	health.Attach()
	source.levelUp.Trigger(2)
	require.Equal(t, float64(100), health.Current())
}

func TestHealth_DetachFromOtherSubscriber(t *testing.T) {
	level := newLevel(t)
	health := newHealth(t, vitality.WithSource(level))

	level.Subscribe(func(int) { health.Detach() })
	health.Attach()

	health.Drain()
	require.NoError(t, level.GainExperience(100))

	require.Equal(t, float64(98), health.Current())
	require.Equal(t, vitality.Unsubscribed, health.State())
}

func TestSubscriptionState_String(t *testing.T) {
	require.Equal(t, "Subscribed", vitality.Subscribed.String())
	require.Equal(t, "Unsubscribed", vitality.Unsubscribed.String())
	require.Equal(t, "SubscriptionState(7)", vitality.SubscriptionState(7).String())
}
