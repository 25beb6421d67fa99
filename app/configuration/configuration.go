package configuration

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	flag "github.com/spf13/pflag"

	"github.com/gamehive/observer/ierrors"
)

var (
	// ErrConfigDoesNotExist is returned if the config file is unknown.
	ErrConfigDoesNotExist = ierrors.New("config does not exist")
	// ErrUnknownConfigFormat is returned if the format of the config file is unknown.
	ErrUnknownConfigFormat = ierrors.New("unknown config file format")
)

// Configuration merges parameters from a config file, environment variables and command line flags.
// All key paths are case-insensitive.
type Configuration struct {
	config *koanf.Koanf
}

// New returns a new configuration.
func New() *Configuration {
	return &Configuration{
		config: koanf.New("."),
	}
}

// LoadFile merges a JSON, YAML or TOML file into the configuration. Existing keys are overwritten.
func (c *Configuration) LoadFile(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return ierrors.Wrapf(ErrConfigDoesNotExist, "file %s", filePath)
		}

		return err
	}
	if info.IsDir() {
		return ierrors.Errorf("given path is a directory instead of a file %s", filePath)
	}

	parser, supported := parsersByExtension[strings.ToLower(filepath.Ext(filePath))]
	if !supported {
		return ierrors.Wrapf(ErrUnknownConfigFormat, "file %s", filePath)
	}

	return c.config.Load(file.Provider(filePath), parser)
}

// LoadFlagSet merges the flags into the configuration. Flags set on the command line overwrite existing keys,
// the defaults of the other flags only fill in keys that are still missing.
func (c *Configuration) LoadFlagSet(flagSet *flag.FlagSet) error {
	return c.config.Load(lowerPosflagProvider(flagSet, ".", c.config), nil)
}

// LoadEnvironmentVars merges the environment variables starting with prefix into the configuration.
// "_" in the remaining name separates the nesting levels, and only keys that already exist are accepted.
func (c *Configuration) LoadEnvironmentVars(prefix string) error {
	if prefix != "" {
		prefix += "_"
	}

	return c.config.Load(env.Provider(prefix, ".", func(s string) string {
		mapKey := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", ".")
		if !c.config.Exists(mapKey) {
			return ""
		}

		return mapKey
	}), nil)
}

// Exists returns true if the given path is set.
func (c *Configuration) Exists(path string) bool {
	return c.config.Exists(strings.ToLower(path))
}

// Duration returns the value at path as a time.Duration. Numbers are taken as nanoseconds, strings are parsed.
func (c *Configuration) Duration(path string) time.Duration {
	return c.config.Duration(strings.ToLower(path))
}

// UnmarshalKey unmarshals the value at the given path into the struct o.
// Fields are matched by their "koanf" tag. Keys missing in the config leave the field untouched.
func (c *Configuration) UnmarshalKey(path string, o interface{}) error {
	return c.config.UnmarshalWithConf(strings.ToLower(path), o, koanf.UnmarshalConf{Tag: "koanf"})
}
