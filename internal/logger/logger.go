package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Production gets JSON lines, everything
// else gets the text formatter.
func New(level string, production bool) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, production)
}

func NewWithOutput(out io.Writer, level string, production bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if production {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("unknown log level, using info")
	}
	log.SetLevel(lvl)
	return log
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Component-specific loggers

// DB returns a logger for database operations
func DB(log logrus.FieldLogger) logrus.FieldLogger {
	return log.WithField("component", "db")
}

// HTTP returns a logger for the HTTP surface
func HTTP(log logrus.FieldLogger) logrus.FieldLogger {
	return log.WithField("component", "http")
}

// Auth returns a logger for authentication
func Auth(log logrus.FieldLogger) logrus.FieldLogger {
	return log.WithField("component", "auth")
}

// Service returns a logger for a named record service
func Service(log logrus.FieldLogger, name string) logrus.FieldLogger {
	return log.WithFields(logrus.Fields{"component": "service", "service": name})
}
