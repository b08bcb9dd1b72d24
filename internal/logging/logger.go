// Package logging builds the logrus loggers used by the command line tools.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields represents structured logging fields
type Fields = logrus.Fields

// ParseLevel maps a level name to a logrus level. Unknown or empty names
// fall back to info.
func ParseLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// NewWithOutput creates a logger writing to w.
func NewWithOutput(w io.Writer, level string, json bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	logger.SetLevel(ParseLevel(level))
	return logger
}

// WithComponent returns an entry tagged with the component name.
func WithComponent(logger logrus.FieldLogger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
