package scene

import (
	"github.com/gamehive/observer/monitor"
	"github.com/gamehive/observer/progression"
	"github.com/gamehive/observer/runtime/event"
	"github.com/gamehive/observer/vitality"
)

// Events contains the events of all components of a Scene.
type Events struct {
	Level    *progression.Events
	Health   *vitality.Events
	Debugger *monitor.Events

	event.Group[Events, *Events]
}

// NewEvents contains the constructor of the Events object (it is generated by a generic factory).
var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		Level:    progression.NewEvents(),
		Health:   vitality.NewEvents(),
		Debugger: monitor.NewEvents(),
	}
})
