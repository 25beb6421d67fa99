package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/dig"

	"github.com/gamehive/observer/app/configuration"
	"github.com/gamehive/observer/ierrors"
	"github.com/gamehive/observer/lo"
	"github.com/gamehive/observer/logger"
	"github.com/gamehive/observer/scene"
)

const (
	appName   = "observerdemo"
	envPrefix = "OBSERVER"

	configurationKeyDuration = "duration"
)

type flags struct {
	configFilePath string
	flagSet        *flag.FlagSet
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if ierrors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmdFlags, err := parseFlags(args)
	if err != nil {
		return err
	}

	container := dig.New()

	if err := container.Provide(func() *flags { return cmdFlags }); err != nil {
		return err
	}
	if err := container.Provide(loadConfiguration); err != nil {
		return err
	}
	if err := container.Provide(initLogger); err != nil {
		return err
	}
	if err := container.Provide(scene.LoadParameters); err != nil {
		return err
	}
	// depends on the logger so that the global logger is initialized first
	if err := container.Provide(func(params *scene.Parameters, _ *logger.Logger) (*scene.Scene, error) {
		return scene.New(params, logger.NewLogger("Scene"))
	}); err != nil {
		return err
	}

	return container.Invoke(func(s *scene.Scene, log *logger.Logger, config *configuration.Configuration) error {
		defer func() { _ = log.Sync() }()

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		duration := config.Duration(configurationKeyDuration)
		if duration > 0 {
			var cancelTimeout context.CancelFunc
			ctx, cancelTimeout = context.WithTimeout(ctx, duration)
			defer cancelTimeout()
		}

		log.Infof("Starting %s %s", appName, lo.Cond(duration > 0, "for "+duration.String(), "until interrupted"))

		if err := s.Run(ctx); err != nil {
			return ierrors.Wrap(err, "scene failed")
		}

		log.Infof("Stopped %s at level %d with %g health", appName, s.Level.CurrentLevel(), s.Health.Current())

		return nil
	})
}

func parseFlags(args []string) (*flags, error) {
	cmdFlags := &flags{
		flagSet: configuration.NewUnsortedFlagSet(appName, flag.ContinueOnError),
	}

	cmdFlags.flagSet.StringVarP(&cmdFlags.configFilePath, "config", "c", "", "file path of the configuration file (json, yaml or toml)")
	cmdFlags.flagSet.Duration(configurationKeyDuration, 0, "stop the scene after this duration (0 runs until interrupted)")
	cmdFlags.flagSet.String(logger.ConfigurationKeyLevel, logger.DefaultCfg.Level, "the minimum enabled logging level")
	cmdFlags.flagSet.String(logger.ConfigurationKeyEncoding, logger.DefaultCfg.Encoding, "the logger's encoding (console or json)")
	cmdFlags.flagSet.AddFlagSet(scene.FlagSet())

	if err := cmdFlags.flagSet.Parse(args); err != nil {
		return nil, err
	}

	return cmdFlags, nil
}

func initLogger(config *configuration.Configuration) (*logger.Logger, error) {
	if err := logger.InitGlobalLogger(config); err != nil {
		return nil, ierrors.Wrap(err, "initializing logger failed")
	}

	return logger.NewLogger(appName), nil
}

// loadConfiguration merges the config file, the environment and the command line (in ascending priority).
func loadConfiguration(cmdFlags *flags) (*configuration.Configuration, error) {
	config := configuration.New()

	if cmdFlags.configFilePath != "" {
		if err := config.LoadFile(cmdFlags.configFilePath); err != nil {
			return nil, ierrors.Wrapf(err, "loading config file failed")
		}
	}

	// load the flags to set the default values
	if err := config.LoadFlagSet(cmdFlags.flagSet); err != nil {
		return nil, ierrors.Wrap(err, "loading flags failed")
	}

	// env vars are only accepted for keys that already exist
	if err := config.LoadEnvironmentVars(envPrefix); err != nil {
		return nil, ierrors.Wrap(err, "loading environment variables failed")
	}

	// load the flags again to overwrite env vars that were also set via command line
	if err := config.LoadFlagSet(cmdFlags.flagSet); err != nil {
		return nil, ierrors.Wrap(err, "loading flags failed")
	}

	return config, nil
}
