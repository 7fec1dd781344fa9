package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

func Init(level string) {
	Log = logrus.New()
	Log.Out = os.Stdout
	Log.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
}

// L returns the shared logger, initializing a default one if Init was not
// called (keeps unit tests from nil-dereferencing).
func L() *logrus.Logger {
	if Log == nil {
		Init("info")
	}
	return Log
}
