package scene

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/atomic"

	"github.com/gamehive/observer/app/daemon"
	"github.com/gamehive/observer/ierrors"
	"github.com/gamehive/observer/logger"
	"github.com/gamehive/observer/monitor"
	"github.com/gamehive/observer/progression"
	"github.com/gamehive/observer/runtime/event"
	"github.com/gamehive/observer/runtime/timeutil"
	"github.com/gamehive/observer/runtime/workerpool"
	"github.com/gamehive/observer/vitality"
)

// ErrAlreadyStarted is returned if a Scene is started twice.
var ErrAlreadyStarted = ierrors.New("scene was already started")

// the debugger stops first so that its last report still sees the other components.
const (
	shutdownOrderExperience = iota
	shutdownOrderHealth
	shutdownOrderDebugger
)

// Scene hosts a Level, a Health listening to it and a Debugger watching both, and drives them from background
// workers.
type Scene struct {
	// Events contains the events of all components of the Scene.
	Events *Events

	Level    *progression.Level
	Health   *vitality.Health
	Debugger *monitor.Debugger

	params     *Parameters
	daemon     *daemon.OrderedDaemon
	reportPool *workerpool.WorkerPool
	logger     *logger.Logger

	started      atomic.Bool
	shutdownOnce sync.Once
}

// New creates the components of a Scene from the given parameters.
func New(params *Parameters, log *logger.Logger) (*Scene, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Scene{
		Events: NewEvents(),
		params: params,
		logger: log,
	}
	s.reportPool = workerpool.New("Debugger", workerpool.WithWorkerCount(1), workerpool.WithPanicHandler(func(recovered any) {
		s.logger.Errorf("debugger report panicked: %v", recovered)
	}))
	s.daemon = daemon.New(daemon.WithLogger(log.Named("Daemon")))

	var err error
	if s.Level, err = progression.NewLevel(progression.WithPointsPerLevel(params.Level.PointsPerLevel)); err != nil {
		return nil, ierrors.Wrap(err, "failed to create level")
	}

	if s.Health, err = vitality.NewHealth(
		vitality.WithMax(params.Health.Max),
		vitality.WithDrainPerTick(params.Health.DrainPerTick),
		vitality.WithSource(s.Level),
	); err != nil {
		return nil, ierrors.Wrap(err, "failed to create health")
	}

	s.Debugger = monitor.NewDebugger(s.Level, s.Health,
		monitor.WithReportHook(monitor.LogSink(log.Named("Debugger")), event.WithWorkerPool(s.reportPool)),
	)

	s.Events.Level.LinkTo(s.Level.Events)
	s.Events.Health.LinkTo(s.Health.Events)
	s.Events.Debugger.LinkTo(s.Debugger.Events)

	s.hookLogs()

	return s, nil
}

// Start attaches the health (if enabled) and starts the background workers. It does not block.
func (s *Scene) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	s.reportPool.Start()

	if s.params.Health.Enabled {
		s.EnableHealth()
	}

	if err := s.registerWorkers(); err != nil {
		s.Shutdown()

		return err
	}

	s.daemon.Start()

	return nil
}

// Run starts the Scene and blocks until the context is done or the Scene was shut down.
func (s *Scene) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-s.daemon.ContextStopped().Done():
	}

	s.Shutdown()

	return nil
}

// Shutdown detaches the health and stops all background workers. Pending reports are still written.
func (s *Scene) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.logger.Debugf("Stopping background workers: %s", strings.Join(s.RunningWorkers(), ", "))

		s.DisableHealth()
		s.daemon.ShutdownAndWait()
		s.reportPool.Shutdown()
	})
}

// EnableHealth makes the health listen to level ups.
func (s *Scene) EnableHealth() {
	s.Health.Attach()
}

// DisableHealth stops the health from listening to level ups.
func (s *Scene) DisableHealth() {
	s.Health.Detach()
}

// RunningWorkers returns the names of the background workers that are still running.
func (s *Scene) RunningWorkers() []string {
	return s.daemon.GetRunningBackgroundWorkers()
}

func (s *Scene) registerWorkers() error {
	if err := s.daemon.BackgroundWorker("Experience", s.gainExperience, shutdownOrderExperience); err != nil {
		return ierrors.Wrap(err, "failed to start experience worker")
	}

	if err := s.daemon.BackgroundWorker("HealthDrain", s.drainHealth, shutdownOrderHealth); err != nil {
		return ierrors.Wrap(err, "failed to start health drain worker")
	}

	if !s.params.Debugger.Enabled {
		return nil
	}

	if err := s.daemon.BackgroundWorker("Debugger", s.report, shutdownOrderDebugger); err != nil {
		return ierrors.Wrap(err, "failed to start debugger worker")
	}

	return nil
}

func (s *Scene) gainExperience(ctx context.Context) {
	timeutil.NewTicker(func() {
		if err := s.Level.GainExperience(s.params.Level.GainAmount); err != nil {
			s.logger.Errorf("failed to gain experience: %s", err)
		}
	}, s.params.Level.GainInterval, timeutil.WithContext(ctx)).WaitForGracefulShutdown()
}

// drainHealth drains right away and then once per interval for as long as there is health left. Once the health is
// depleted the worker ends, a later reset does not restart it.
func (s *Scene) drainHealth(ctx context.Context) {
	timeutil.NewTicker(func() {
		s.Health.Drain()
	}, s.params.Health.DrainInterval, timeutil.WithContext(ctx), timeutil.WithImmediateTick(), timeutil.WithCondition(func() bool {
		return s.Health.Current() > 0
	})).WaitForGracefulShutdown()
}

func (s *Scene) report(ctx context.Context) {
	timeutil.NewTicker(func() {
		s.Debugger.Report()
	}, s.params.Debugger.ReportInterval, timeutil.WithContext(ctx)).WaitForGracefulShutdown()
}

func (s *Scene) hookLogs() {
	s.Events.Level.LevelUp.Hook(func(newLevel int) {
		s.logger.Infof("Level up! Now at level %d", newLevel)
	})

	s.Events.Health.Restored.Hook(func(current float64) {
		s.logger.Debugf("Health restored to %g", current)
	})

	s.Events.Health.Depleted.Hook(func() {
		s.logger.Warn("Health depleted")
	})
}
