package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger once. A failure to open the log
// file is returned and leaves logging disabled.
func InitLogger(logLevel, logFile string, debugToConsole bool) error {
	var initErr error
	loggerOnce.Do(func() {
		logger, err := NewLogger(LoggerOptions{
			Level:          logLevel,
			File:           logFile,
			DebugToConsole: debugToConsole,
		})
		if err != nil {
			initErr = err
			return
		}
		globalLogger = logger
	})
	return initErr
}

// SetLogger replaces the global logger; used by tests
func SetLogger(logger LoggerInterface) {
	globalLogger = logger
}

// CloseLogger flushes and closes the global logger outputs
func CloseLogger() error {
	if globalLogger == nil {
		return nil
	}
	return globalLogger.Close()
}

// Component returns a named child of the global logger, or a no-op logger
// before initialization.
func Component(name string) LoggerInterface {
	if globalLogger == nil {
		return nopLogger{}
	}
	return globalLogger.Named(name)
}

func LogInfo(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)          {}
func (nopLogger) Debugf(string, ...interface{})   {}
func (nopLogger) Info(string, ...Field)           {}
func (nopLogger) Infof(string, ...interface{})    {}
func (nopLogger) Warn(string, ...Field)           {}
func (nopLogger) Warnf(string, ...interface{})    {}
func (nopLogger) Error(string, ...Field)          {}
func (nopLogger) Errorf(string, ...interface{})   {}
func (n nopLogger) With(...Field) LoggerInterface { return n }
func (n nopLogger) Named(string) LoggerInterface  { return n }
func (nopLogger) SetLevel(LogLevel)               {}
func (nopLogger) AddOutput(Output)                {}
func (nopLogger) Close() error                    { return nil }
