package progression

import (
	"math"

	"github.com/gamehive/observer/ierrors"
	"github.com/gamehive/observer/runtime/event"
	"github.com/gamehive/observer/runtime/options"
	"github.com/gamehive/observer/runtime/syncutils"
)

// DefaultPointsPerLevel is the amount of experience that is needed to advance one level.
const DefaultPointsPerLevel = 100

// Level accumulates experience and publishes a notification whenever the derived level increases.
//
// The level is never stored, it is always computed as experience / pointsPerLevel.
type Level struct {
	// Events contains the events of the Level.
	Events *Events

	experience      int
	experienceMutex syncutils.RWMutex

	// dispatchMutex serializes the mutation of the experience together with the notification of the subscribers.
	dispatchMutex syncutils.Mutex

	optsPointsPerLevel int
}

// NewLevel creates a Level without experience.
func NewLevel(opts ...options.Option[Level]) (*Level, error) {
	l := options.Apply(&Level{
		Events:             NewEvents(),
		optsPointsPerLevel: DefaultPointsPerLevel,
	}, opts)

	if l.optsPointsPerLevel <= 0 {
		return nil, ierrors.Wrapf(ErrInvalidPointsPerLevel, "got %d", l.optsPointsPerLevel)
	}

	return l, nil
}

// GainExperience adds the amount to the accumulated experience. If this raises the level, the LevelUp event is
// triggered exactly once with the new level (even if several levels were skipped) before the method returns.
//
// Subscribers may read the Level but must not gain experience from within their callback.
func (l *Level) GainExperience(amount int) error {
	if amount <= 0 {
		return ierrors.Wrapf(ErrInvalidExperienceAmount, "got %d", amount)
	}

	l.dispatchMutex.Lock()
	defer l.dispatchMutex.Unlock()

	previousLevel, newLevel, total, err := l.addExperience(amount)
	if err != nil {
		return err
	}

	l.Events.ExperienceGained.Trigger(amount, total)

	if newLevel > previousLevel {
		l.Events.LevelUpSignal.Trigger()
		l.Events.LevelUp.Trigger(newLevel)
	}

	return nil
}

// Subscribe registers a callback that is called with the new level on every level up. Registering the same function
// twice results in two calls.
func (l *Level) Subscribe(callback func(newLevel int)) *event.Hook[func(int)] {
	return l.Events.LevelUp.Hook(callback)
}

// Unsubscribe removes a callback that was registered with Subscribe. Unknown or already removed hooks are ignored.
func (l *Level) Unsubscribe(hook *event.Hook[func(int)]) {
	hook.Unhook()
}

// Experience returns the accumulated experience.
func (l *Level) Experience() int {
	l.experienceMutex.RLock()
	defer l.experienceMutex.RUnlock()

	return l.experience
}

// CurrentLevel returns the level that corresponds to the accumulated experience.
func (l *Level) CurrentLevel() int {
	l.experienceMutex.RLock()
	defer l.experienceMutex.RUnlock()

	return l.level(l.experience)
}

// PointsPerLevel returns the amount of experience that is needed to advance one level.
func (l *Level) PointsPerLevel() int {
	return l.optsPointsPerLevel
}

func (l *Level) addExperience(amount int) (previousLevel, newLevel, total int, err error) {
	l.experienceMutex.Lock()
	defer l.experienceMutex.Unlock()

	if amount > math.MaxInt-l.experience {
		return 0, 0, 0, ierrors.Wrapf(ErrExperienceOverflow, "%d + %d", l.experience, amount)
	}

	previousLevel = l.level(l.experience)
	l.experience += amount

	return previousLevel, l.level(l.experience), l.experience, nil
}

func (l *Level) level(experience int) int {
	return experience / l.optsPointsPerLevel
}

// WithPointsPerLevel sets the amount of experience that is needed to advance one level.
func WithPointsPerLevel(pointsPerLevel int) options.Option[Level] {
	return func(l *Level) {
		l.optsPointsPerLevel = pointsPerLevel
	}
}
