package scene

import (
	"time"

	flag "github.com/spf13/pflag"

	"github.com/gamehive/observer/app/configuration"
	"github.com/gamehive/observer/ierrors"
	"github.com/gamehive/observer/progression"
	"github.com/gamehive/observer/vitality"
)

// ErrInvalidParameters is returned if the scene parameters can not drive the components.
var ErrInvalidParameters = ierrors.New("invalid scene parameters")

// Parameters contains the settings of a Scene.
type Parameters struct {
	Level    LevelParameters    `koanf:"level"`
	Health   HealthParameters   `koanf:"health"`
	Debugger DebuggerParameters `koanf:"debugger"`
}

// LevelParameters contains the settings of the experience source.
type LevelParameters struct {
	// PointsPerLevel is the amount of experience per level.
	PointsPerLevel int `koanf:"pointsPerLevel"`
	// GainAmount is the experience gained on every tick.
	GainAmount int `koanf:"gainAmount"`
	// GainInterval is the time between two experience gains.
	GainInterval time.Duration `koanf:"gainInterval"`
}

// HealthParameters contains the settings of the health observer.
type HealthParameters struct {
	// Max is the health after a reset.
	Max float64 `koanf:"max"`
	// DrainPerTick is the health lost on every drain tick.
	DrainPerTick float64 `koanf:"drainPerTick"`
	// DrainInterval is the time between two drain ticks.
	DrainInterval time.Duration `koanf:"drainInterval"`
	// Enabled defines whether the health listens to level ups when the scene starts.
	Enabled bool `koanf:"enabled"`
}

// DebuggerParameters contains the settings of the debugger.
type DebuggerParameters struct {
	// Enabled defines whether the debugger reports at all.
	Enabled bool `koanf:"enabled"`
	// ReportInterval is the time between two reports.
	ReportInterval time.Duration `koanf:"reportInterval"`
}

// DefaultParameters returns the parameters of the demo scene.
func DefaultParameters() *Parameters {
	return &Parameters{
		Level: LevelParameters{
			PointsPerLevel: progression.DefaultPointsPerLevel,
			GainAmount:     10,
			GainInterval:   200 * time.Millisecond,
		},
		Health: HealthParameters{
			Max:           vitality.DefaultMax,
			DrainPerTick:  vitality.DefaultDrainPerTick,
			DrainInterval: time.Second,
			Enabled:       true,
		},
		Debugger: DebuggerParameters{
			Enabled:        true,
			ReportInterval: time.Second,
		},
	}
}

// LoadParameters reads the parameters from the configuration. Missing keys keep their default value.
func LoadParameters(config *configuration.Configuration) (*Parameters, error) {
	params := DefaultParameters()
	for path, section := range map[string]any{
		"level":    &params.Level,
		"health":   &params.Health,
		"debugger": &params.Debugger,
	} {
		if !config.Exists(path) {
			continue
		}

		if err := config.UnmarshalKey(path, section); err != nil {
			return nil, ierrors.Wrapf(err, "failed to parse %s parameters", path)
		}
	}

	return params, params.Validate()
}

// Validate checks that the intervals and amounts can drive the components.
func (p *Parameters) Validate() error {
	switch {
	case p.Level.GainAmount <= 0:
		return ierrors.Wrapf(ErrInvalidParameters, "level.gainAmount must be positive, got %d", p.Level.GainAmount)
	case p.Level.GainInterval <= 0:
		return ierrors.Wrapf(ErrInvalidParameters, "level.gainInterval must be positive, got %s", p.Level.GainInterval)
	case p.Health.DrainInterval <= 0:
		return ierrors.Wrapf(ErrInvalidParameters, "health.drainInterval must be positive, got %s", p.Health.DrainInterval)
	case p.Debugger.Enabled && p.Debugger.ReportInterval <= 0:
		return ierrors.Wrapf(ErrInvalidParameters, "debugger.reportInterval must be positive, got %s", p.Debugger.ReportInterval)
	default:
		return nil
	}
}

// FlagSet returns the flags of all parameters with their default values.
func FlagSet() *flag.FlagSet {
	defaults := DefaultParameters()

	fs := configuration.NewUnsortedFlagSet("scene", flag.ContinueOnError)
	fs.Int("level.pointsPerLevel", defaults.Level.PointsPerLevel, "the amount of experience per level")
	fs.Int("level.gainAmount", defaults.Level.GainAmount, "the experience gained on every tick")
	fs.Duration("level.gainInterval", defaults.Level.GainInterval, "the time between two experience gains")
	fs.Float64("health.max", defaults.Health.Max, "the health after a reset")
	fs.Float64("health.drainPerTick", defaults.Health.DrainPerTick, "the health lost on every drain tick")
	fs.Duration("health.drainInterval", defaults.Health.DrainInterval, "the time between two drain ticks")
	fs.Bool("health.enabled", defaults.Health.Enabled, "whether the health listens to level ups")
	fs.Bool("debugger.enabled", defaults.Debugger.Enabled, "whether the debugger reports")
	fs.Duration("debugger.reportInterval", defaults.Debugger.ReportInterval, "the time between two reports")

	return fs
}
