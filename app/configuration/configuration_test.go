package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/gamehive/observer/ierrors"
)

func writeFile(t *testing.T, name string, content string) string {
	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o600))

	return filePath
}

type levelParameters struct {
	PointsPerLevel int           `koanf:"pointsPerLevel"`
	GainAmount     int           `koanf:"gainAmount"`
	GainInterval   time.Duration `koanf:"gainInterval"`
}

type debuggerParameters struct {
	Enabled        bool          `koanf:"enabled"`
	ReportInterval time.Duration `koanf:"reportInterval"`
}

func TestLoadFlagSet(t *testing.T) {
	testFlagSet := NewUnsortedFlagSet("", flag.ContinueOnError)
	testFlagSet.Duration("Duration", time.Second, "test")
	require.NoError(t, testFlagSet.Set("Duration", "3s"))

	config := New()
	require.NoError(t, config.LoadFlagSet(testFlagSet))

	require.Equal(t, 3*time.Second, config.Duration("Duration"))
	require.Equal(t, 3*time.Second, config.Duration("duration"))
}

func TestFlagDefaultsDoNotOverrideFile(t *testing.T) {
	filePath := writeFile(t, "config.json", `{"level": {"gainAmount": 25}}`)

	config := New()
	require.NoError(t, config.LoadFile(filePath))

	testFlagSet := flag.NewFlagSet("", flag.ContinueOnError)
	testFlagSet.Int("level.gainAmount", 10, "test")
	testFlagSet.Int("level.pointsPerLevel", 100, "test")
	require.NoError(t, config.LoadFlagSet(testFlagSet))

	params := &levelParameters{}
	require.NoError(t, config.UnmarshalKey("level", params))
	require.Equal(t, 25, params.GainAmount)
	require.Equal(t, 100, params.PointsPerLevel)

	require.NoError(t, testFlagSet.Set("level.gainAmount", "40"))
	require.NoError(t, config.LoadFlagSet(testFlagSet))
	require.NoError(t, config.UnmarshalKey("level", params))
	require.Equal(t, 40, params.GainAmount)
}

func TestLoadEnvironmentVars(t *testing.T) {
	testFlagSet := flag.NewFlagSet("", flag.ContinueOnError)
	testFlagSet.Bool("debugger.enabled", true, "test")
	testFlagSet.Duration("debugger.reportInterval", time.Second, "test")

	t.Setenv("OBSERVER_DEBUGGER_ENABLED", "false")
	t.Setenv("OBSERVER_DEBUGGER_REPORTINTERVAL", "5s")
	t.Setenv("OBSERVER_DEBUGGER_UNKNOWN", "1")

	config := New()
	require.NoError(t, config.LoadFlagSet(testFlagSet))
	require.NoError(t, config.LoadEnvironmentVars("OBSERVER"))

	params := &debuggerParameters{}
	require.NoError(t, config.UnmarshalKey("debugger", params))
	require.Equal(t, &debuggerParameters{Enabled: false, ReportInterval: 5 * time.Second}, params)
	require.Equal(t, 5*time.Second, config.Duration("debugger.reportInterval"))
	require.False(t, config.Exists("debugger.unknown"), "expected unknown env var to be ignored")
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "config.json",
			content: `{"Level": {"PointsPerLevel": 50, "gainAmount": 5, "gainInterval": "300ms"}}`,
		},
		{
			name:    "yaml",
			file:    "config.yaml",
			content: "level:\n  pointsPerLevel: 50\n  GainAmount: 5\n  gainInterval: 300ms\n",
		},
		{
			name:    "yml",
			file:    "config.yml",
			content: "level:\n  pointsPerLevel: 50\n  gainAmount: 5\n  gainInterval: 300ms\n",
		},
		{
			name:    "toml",
			file:    "config.toml",
			content: "[Level]\npointsPerLevel = 50\ngainAmount = 5\ngainInterval = \"300ms\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := New()
			require.NoError(t, config.LoadFile(writeFile(t, tt.file, tt.content)))

			require.True(t, config.Exists("level.pointsPerLevel"))
			require.True(t, config.Exists("LEVEL.POINTSPERLEVEL"))
			require.Equal(t, 300*time.Millisecond, config.Duration("level.gainInterval"))

			params := &levelParameters{GainInterval: time.Second}
			require.NoError(t, config.UnmarshalKey("level", params))
			require.Equal(t, &levelParameters{
				PointsPerLevel: 50,
				GainAmount:     5,
				GainInterval:   300 * time.Millisecond,
			}, params)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	config := New()

	err := config.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.True(t, ierrors.Is(err, ErrConfigDoesNotExist))

	err = config.LoadFile(writeFile(t, "config.ini", "a=1"))
	require.True(t, ierrors.Is(err, ErrUnknownConfigFormat))

	require.Error(t, config.LoadFile(t.TempDir()))
}

func TestUnmarshalKeyKeepsDefaults(t *testing.T) {
	config := New()
	require.NoError(t, config.LoadFile(writeFile(t, "config.yaml", "level:\n  gainAmount: 7\n")))

	params := &levelParameters{PointsPerLevel: 100, GainAmount: 10, GainInterval: 200 * time.Millisecond}
	require.NoError(t, config.UnmarshalKey("level", params))

	require.Equal(t, &levelParameters{PointsPerLevel: 100, GainAmount: 7, GainInterval: 200 * time.Millisecond}, params)
}
