// Package logger exposes the process-wide structured logger.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance. Init must run before first use; packages
// that may be exercised without Init (tests, tools) should call Default.
var Log = Default()

// Init configures the global logger from a level string.
func Init(levelStr string) {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}

// Default builds a logger with the standard formatter and info level.
func Default() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}
