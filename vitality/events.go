package vitality

import (
	"github.com/gamehive/observer/runtime/event"
)

// Events contains the events of a Health.
type Events struct {
	// Drained is triggered with the remaining health after every drain tick.
	Drained *event.Event1[float64]
	// Depleted is triggered when a drain tick takes the health from a positive value to zero or below.
	Depleted *event.Event
	// Restored is triggered with the restored health after every reset.
	Restored *event.Event1[float64]

	event.Group[Events, *Events]
}

// NewEvents contains the constructor of the Events object (it is generated by a generic factory).
var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		Drained:  event.New1[float64](),
		Depleted: event.New(),
		Restored: event.New1[float64](),
	}
})
