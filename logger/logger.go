package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	Info  = newLogger(os.Stdout, logrus.InfoLevel)
	Error = newLogger(os.Stderr, logrus.WarnLevel)
)

func newLogger(out *os.File, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Configure applies LOG_LEVEL and LOG_FORMAT to both loggers.
func Configure(level, format string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		Info.SetLevel(lvl)
	}
	var f logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if strings.EqualFold(format, "json") {
		f = &logrus.JSONFormatter{}
	}
	Info.SetFormatter(f)
	Error.SetFormatter(f)
}

// Action tags an info entry with the emitting service and action.
func Action(service, action string) *logrus.Entry {
	return Info.WithFields(logrus.Fields{"service": service, "action": action})
}

// Failure is Action on the error logger, carrying err.
func Failure(service, action string, err error) *logrus.Entry {
	return Error.WithFields(logrus.Fields{"service": service, "action": action}).WithError(err)
}
