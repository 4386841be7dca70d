// Package logging constructs the loggers used across the build pipeline.
package logging

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New creates a logger configured from the environment. LOG_LEVEL selects
// the level (default info) and LOG_FORMAT=json switches to JSON output for
// log aggregation.
func New() *logrus.Logger {
	logger := logrus.New()

	if os.Getenv("LOG_FORMAT") == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if logLevel, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
