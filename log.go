//go:build !ios && !android && (amd64 || arm64)

package ffswscale

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/obinnaokechukwu/ffswscale/avutil"
	"github.com/obinnaokechukwu/ffswscale/internal/bindings"
)

// LogLevel represents FFmpeg log levels.
type LogLevel int32

// Log level constants matching FFmpeg's AV_LOG_* values.
const (
	LogQuiet   LogLevel = -8 // Print no output
	LogPanic   LogLevel = 0  // Something went really wrong, crash
	LogFatal   LogLevel = 8  // Something went wrong, exit now
	LogError   LogLevel = 16 // Something went wrong, recovery possible
	LogWarning LogLevel = 24 // Something unexpected but recovery possible
	LogInfo    LogLevel = 32 // Standard information
	LogVerbose LogLevel = 40 // Detailed information
	LogDebug   LogLevel = 48 // Stuff for debugging
	LogTrace   LogLevel = 56 // Extremely verbose debugging
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch {
	case l <= LogQuiet:
		return "quiet"
	case l <= LogPanic:
		return "panic"
	case l <= LogFatal:
		return "fatal"
	case l <= LogError:
		return "error"
	case l <= LogWarning:
		return "warning"
	case l <= LogInfo:
		return "info"
	case l <= LogVerbose:
		return "verbose"
	case l <= LogDebug:
		return "debug"
	default:
		return "trace"
	}
}

var logLevelNames = map[string]LogLevel{
	"quiet":   LogQuiet,
	"panic":   LogPanic,
	"fatal":   LogFatal,
	"error":   LogError,
	"warning": LogWarning,
	"info":    LogInfo,
	"verbose": LogVerbose,
	"debug":   LogDebug,
	"trace":   LogTrace,
}

// ParseLogLevel parses a level name as printed by LogLevel.String.
func ParseLogLevel(s string) (LogLevel, error) {
	if l, ok := logLevelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return LogQuiet, fmt.Errorf("ffswscale: unknown FFmpeg log level %q", s)
}

// SetLogLevel sets FFmpeg's global log level, which controls what libswscale
// itself prints to stderr.
func SetLogLevel(level LogLevel) error {
	if err := bindings.Load(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotLoaded, err)
	}
	return avutil.LogSetLevel(int32(level))
}

// GetLogLevel returns FFmpeg's global log level.
func GetLogLevel() LogLevel {
	return LogLevel(avutil.LogGetLevel())
}

var pkgLogger atomic.Pointer[logrus.Entry]

func init() {
	pkgLogger.Store(logrus.WithField("component", "ffswscale"))
}

// Logger returns the package logger used by handles created without
// WithLogger.
func Logger() *logrus.Entry {
	return pkgLogger.Load()
}

// SetLogger replaces the package logger. nil restores the default, which
// writes through logrus's standard logger.
func SetLogger(l *logrus.Entry) {
	if l == nil {
		l = logrus.WithField("component", "ffswscale")
	}
	pkgLogger.Store(l)
}

// logEngineError records an engine diagnostic. The text stays in the log;
// callers return a sentinel instead.
func logEngineError(l *logrus.Entry, op string, err error) {
	l.WithFields(logrus.Fields{
		"op":   op,
		"code": avutil.Code(err),
		"oom":  avutil.IsOutOfMemory(err),
	}).WithError(err).Error("engine call failed")
}
