package progression

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLevel(t *testing.T) *Level {
	level, err := NewLevel()
	require.NoError(t, err)

	return level
}

func TestNewLevel(t *testing.T) {
	level, err := NewLevel()
	require.NoError(t, err)
	require.Equal(t, DefaultPointsPerLevel, level.PointsPerLevel())
	require.Zero(t, level.Experience())
	require.Zero(t, level.CurrentLevel())

	for _, pointsPerLevel := range []int{0, -1, -100} {
		level, err = NewLevel(WithPointsPerLevel(pointsPerLevel))
		require.ErrorIs(t, err, ErrInvalidPointsPerLevel)
		require.Nil(t, level)
	}
}

func TestLevel_GainExperience_InvalidAmount(t *testing.T) {
	level := newTestLevel(t)
	hookCalls := 0
	level.Subscribe(func(int) { hookCalls++ })

	require.NoError(t, level.GainExperience(50))

	for _, amount := range []int{0, -10} {
		require.ErrorIs(t, level.GainExperience(amount), ErrInvalidExperienceAmount)
	}

	require.Equal(t, 50, level.Experience())
	require.Zero(t, hookCalls)
}

func TestLevel_GainExperience_Overflow(t *testing.T) {
	level := newTestLevel(t)
	require.NoError(t, level.GainExperience(math.MaxInt-5))

	require.ErrorIs(t, level.GainExperience(10), ErrExperienceOverflow)
	require.Equal(t, math.MaxInt-5, level.Experience())
}

func TestLevel_TierIsDerived(t *testing.T) {
	level, err := NewLevel(WithPointsPerLevel(7))
	require.NoError(t, err)

	previousLevel := level.CurrentLevel()
	for _, amount := range []int{1, 3, 5, 7, 11, 13, 2, 100, 1, 64} {
		require.NoError(t, level.GainExperience(amount))

		require.Equal(t, level.Experience()/7, level.CurrentLevel())
		require.GreaterOrEqual(t, level.CurrentLevel(), previousLevel)
		previousLevel = level.CurrentLevel()
	}
}

func TestLevel_NotifiesOncePerCrossing(t *testing.T) {
	level := newTestLevel(t)
	require.NoError(t, level.GainExperience(90))

	notifiedLevels := make([]int, 0)
	level.Subscribe(func(newLevel int) {
		notifiedLevels = append(notifiedLevels, newLevel)
	})

	require.NoError(t, level.GainExperience(250))

	require.Equal(t, 340, level.Experience())
	require.Equal(t, 3, level.CurrentLevel())
	require.Equal(t, []int{3}, notifiedLevels)
}

func TestLevel_NoSpuriousNotification(t *testing.T) {
	level := newTestLevel(t)
	require.NoError(t, level.GainExperience(10))

	notified := false
	level.Subscribe(func(int) { notified = true })

	require.NoError(t, level.GainExperience(5))
	require.False(t, notified)
	require.Equal(t, 15, level.Experience())

	// reaching the threshold exactly is a crossing
	require.NoError(t, level.GainExperience(85))
	require.True(t, notified)
	require.Equal(t, 1, level.CurrentLevel())
}

func TestLevel_SubscriberOrder(t *testing.T) {
	level := newTestLevel(t)

	calls := make([]string, 0)
	level.Subscribe(func(newLevel int) { calls = append(calls, "A") })
	level.Subscribe(func(newLevel int) { calls = append(calls, "B") })

	require.NoError(t, level.GainExperience(100))
	require.Equal(t, []string{"A", "B"}, calls)
}

func TestLevel_DuplicateSubscription(t *testing.T) {
	level := newTestLevel(t)

	calls := 0
	callback := func(int) { calls++ }
	level.Subscribe(callback)
	level.Subscribe(callback)

	require.NoError(t, level.GainExperience(100))
	require.Equal(t, 2, calls)
}

func TestLevel_Unsubscribe(t *testing.T) {
	level := newTestLevel(t)

	var callsA, callsB int
	hookA := level.Subscribe(func(int) { callsA++ })
	level.Subscribe(func(int) { callsB++ })

	level.Unsubscribe(hookA)
	level.Unsubscribe(hookA)
	level.Unsubscribe(nil)

	require.NoError(t, level.GainExperience(100))
	require.Zero(t, callsA)
	require.Equal(t, 1, callsB)
}

func TestLevel_SubscriberReadsLevel(t *testing.T) {
	level := newTestLevel(t)

	var observedExperience, observedLevel int
	level.Subscribe(func(newLevel int) {
		observedExperience = level.Experience()
		observedLevel = level.CurrentLevel()
	})

	require.NoError(t, level.GainExperience(120))
	require.Equal(t, 120, observedExperience)
	require.Equal(t, 1, observedLevel)
}

func TestLevel_Events(t *testing.T) {
	level := newTestLevel(t)

	trace := make([]string, 0)
	totals := make([]int, 0)
	level.Events.ExperienceGained.Hook(func(amount, total int) {
		trace = append(trace, "gained")
		totals = append(totals, total)
	})
	level.Events.LevelUpSignal.Hook(func() { trace = append(trace, "signal") })
	level.Events.LevelUp.Hook(func(int) { trace = append(trace, "levelUp") })

	require.NoError(t, level.GainExperience(60))
	require.NoError(t, level.GainExperience(60))

	require.Equal(t, []string{"gained", "gained", "signal", "levelUp"}, trace)
	require.Equal(t, []int{60, 120}, totals)
}

func TestLevel_ConcurrentGains(t *testing.T) {
	level := newTestLevel(t)

	notifiedLevels := make([]int, 0)
	level.Subscribe(func(newLevel int) {
		notifiedLevels = append(notifiedLevels, newLevel)
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 10; j++ {
				require.NoError(t, level.GainExperience(10))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 10000, level.Experience())
	require.Equal(t, 100, level.CurrentLevel())
	require.Len(t, notifiedLevels, 100)
	for i, notifiedLevel := range notifiedLevels {
		require.Equal(t, i+1, notifiedLevel)
	}
}
