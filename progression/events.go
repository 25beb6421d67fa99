package progression

import (
	"github.com/gamehive/observer/runtime/event"
)

// Events contains the events of a Level.
type Events struct {
	// ExperienceGained is triggered with the gained amount and the new total after every accepted gain.
	ExperienceGained *event.Event2[int, int]
	// LevelUpSignal is triggered without parameters right before LevelUp.
	LevelUpSignal *event.Event
	// LevelUp is triggered with the new level whenever the level increases.
	LevelUp *event.Event1[int]

	event.Group[Events, *Events]
}

// NewEvents contains the constructor of the Events object (it is generated by a generic factory).
var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		ExperienceGained: event.New2[int, int](),
		LevelUpSignal:    event.New(),
		LevelUp:          event.New1[int](),
	}
})
