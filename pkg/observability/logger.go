// Package observability provides logger construction and Prometheus metrics
// for the plugin subsystem.
package observability

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured logrus logger. Unknown levels fall back to
// info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(parseLevel(level))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
