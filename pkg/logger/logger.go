package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured logger used across the service, backed by zap.
// Init configures the global level and environment once at startup;
// the package-level helpers delegate to a shared sugared logger.

var (
	mu  sync.RWMutex
	log *zap.SugaredLogger
)

func init() {
	// safe default so packages can log before Init runs
	l, _ := zap.NewDevelopment()
	log = l.Sugar()
}

// Init configures the global logger. Level is case-insensitive
// (debug, info, warn, error); environment "production" switches to
// JSON output. Call early during startup.
func Init(level, environment string) {
	var lvl zapcore.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// keep the default logger rather than crash on a config typo
		log.Errorf("logger init failed: %v", err)
		return
	}
	zap.ReplaceGlobals(l)

	mu.Lock()
	log = l.Sugar()
	mu.Unlock()
}

// L returns the underlying zap logger for callers that need
// structured fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log.Desugar()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debugf(format string, v ...interface{}) { get().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { get().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { get().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { get().Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { get().Fatalf(format, v...) }

// Sync flushes buffered log entries. Called on shutdown.
func Sync() { _ = get().Sync() }
