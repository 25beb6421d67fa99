package logger

import (
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gamehive/observer/app/configuration"
	"github.com/gamehive/observer/ierrors"
	"github.com/gamehive/observer/runtime/syncutils"
)

// Logger is the logger used by all components.
type Logger = zap.SugaredLogger

// Level is the level of a log message.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
	LevelPanic = zapcore.PanicLevel
	LevelFatal = zapcore.FatalLevel
)

// ErrGlobalLoggerAlreadyInitialized is returned when InitGlobalLogger is called more than once.
var ErrGlobalLoggerAlreadyInitialized = ierrors.New("global logger already initialized")

var (
	globalLogger      *Logger
	globalMutex       syncutils.RWMutex
	globalInitialized atomic.Bool
)

// NewRootLogger creates a new root logger from the provided configuration.
func NewRootLogger(cfg Config) (*Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, ierrors.Wrapf(err, "invalid log level %q", cfg.Level)
	}

	stacktraceLevelText := cfg.StacktraceLevel
	if stacktraceLevelText == "" {
		stacktraceLevelText = DefaultCfg.StacktraceLevel
	}

	stacktraceLevel, err := zapcore.ParseLevel(stacktraceLevelText)
	if err != nil {
		return nil, ierrors.Wrapf(err, "invalid stacktrace level %q", cfg.StacktraceLevel)
	}

	encoderConfig := defaultEncoderConfig
	if cfg.TimeEncoder != "" {
		if encoderConfig.EncodeTime, err = parseTimeEncoder(cfg.TimeEncoder); err != nil {
			return nil, err
		}
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = DefaultCfg.Encoding
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = DefaultCfg.OutputPaths
	}

	zapCfg := zap.Config{
		Level:             level,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputPaths,
		ErrorOutputPaths:  []string{"stderr"},
	}

	opts := make([]zap.Option, 0)
	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(stacktraceLevel))
	}
	if !cfg.DisableEvents {
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, NewEventCore(level))
		}))
	}

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to build logger")
	}

	return logger.Sugar(), nil
}

// NewRootLoggerFromConfiguration creates a new root logger from the logger section of the configuration. Unset keys
// keep their default value.
func NewRootLoggerFromConfiguration(config *configuration.Configuration) (*Logger, error) {
	cfg := DefaultCfg
	if err := config.UnmarshalKey("logger", &cfg); err != nil {
		return nil, ierrors.Wrap(err, "failed to parse logger configuration")
	}

	return NewRootLogger(cfg)
}

// InitGlobalLogger creates a root logger from the configuration and installs it as the global logger.
// It can only be called once.
func InitGlobalLogger(config *configuration.Configuration) error {
	root, err := NewRootLoggerFromConfiguration(config)
	if err != nil {
		return err
	}

	globalMutex.Lock()
	defer globalMutex.Unlock()

	if globalInitialized.Load() {
		return ErrGlobalLoggerAlreadyInitialized
	}

	globalLogger = root
	globalInitialized.Store(true)

	return nil
}

// NewLogger returns a named child of the global logger. It panics if the global logger was not initialized.
func NewLogger(name string) *Logger {
	globalMutex.RLock()
	defer globalMutex.RUnlock()

	if !globalInitialized.Load() {
		panic("global logger not initialized")
	}

	return globalLogger.Named(name)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return zap.NewNop().Sugar()
}

// parseTimeEncoder rejects unknown names instead of falling back to the epoch encoder.
func parseTimeEncoder(name string) (zapcore.TimeEncoder, error) {
	switch name {
	case "nanos", "millis", "iso8601", "rfc3339", "rfc3339nano", "epoch":
	default:
		return nil, ierrors.Errorf("invalid time encoder %q", name)
	}

	var encoder zapcore.TimeEncoder
	if err := encoder.UnmarshalText([]byte(name)); err != nil {
		return nil, ierrors.Wrapf(err, "invalid time encoder %q", name)
	}

	return encoder, nil
}
