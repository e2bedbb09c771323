package config

import (
	fiberlog "github.com/gofiber/fiber/v2/log"
)

// Logger receives the diagnostics emitted while loading a configuration.
// Messages are informational and never affect the load result.
type Logger interface {
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
}

type fiberLogger struct{}

func (fiberLogger) Infof(format string, v ...any) { fiberlog.Infof(format, v...) }
func (fiberLogger) Warnf(format string, v ...any) { fiberlog.Warnf(format, v...) }

// DefaultLogger forwards diagnostics to the global fiber logger
func DefaultLogger() Logger {
	return fiberLogger{}
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}

// NopLogger discards every diagnostic
func NopLogger() Logger {
	return nopLogger{}
}
