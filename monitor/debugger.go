package monitor

import (
	"go.uber.org/zap"

	"github.com/gamehive/observer/runtime/event"
	"github.com/gamehive/observer/runtime/options"
)

// ExperienceReader is the read-only view of the Level that the Debugger samples.
type ExperienceReader interface {
	Experience() int
	CurrentLevel() int
}

// HealthReader is the read-only view of the Health that the Debugger samples.
type HealthReader interface {
	Current() float64
}

// Debugger samples a Level and a Health and publishes what it saw. It never writes to the observed components and
// does not subscribe to any of their events.
type Debugger struct {
	// Events contains the events of the Debugger.
	Events *Events

	level  ExperienceReader
	health HealthReader
}

// NewDebugger creates a Debugger for the given components.
func NewDebugger(level ExperienceReader, health HealthReader, opts ...options.Option[Debugger]) *Debugger {
	return options.Apply(&Debugger{
		Events: NewEvents(),
		level:  level,
		health: health,
	}, opts)
}

// Report samples the observed components, triggers the Reported event and returns the snapshot.
func (d *Debugger) Report() *Snapshot {
	snapshot := &Snapshot{
		Experience: d.level.Experience(),
		Level:      d.level.CurrentLevel(),
		Health:     d.health.Current(),
	}

	d.Events.Reported.Trigger(snapshot)

	return snapshot
}

// Events contains the events of a Debugger.
type Events struct {
	// Reported is triggered with every snapshot that the Debugger takes.
	Reported *event.Event1[*Snapshot]

	event.Group[Events, *Events]
}

// NewEvents contains the constructor of the Events object (it is generated by a generic factory).
var NewEvents = event.CreateGroupConstructor(func() *Events {
	return &Events{
		Reported: event.New1[*Snapshot](),
	}
})

// LogSink returns a callback for the Reported event that writes the snapshot to the given logger.
func LogSink(logger *zap.SugaredLogger) func(*Snapshot) {
	return func(snapshot *Snapshot) {
		logger.Info(snapshot.String())
	}
}

// WithReportHook hooks the given sink to the Reported event of the Debugger.
func WithReportHook(sink func(*Snapshot), opts ...event.Option) options.Option[Debugger] {
	return func(d *Debugger) {
		d.Events.Reported.Hook(sink, opts...)
	}
}
