package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger shared by every package.
var Log = logrus.New()

// Init configures the global logger. LOG_LEVEL and LOG_FORMAT override the
// values from config.yaml.
func Init(level, format string) {
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = env
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)

	if env, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = env
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Silence discards all log output. Used by tests and the snapshot tool.
func Silence() {
	Log.SetOutput(io.Discard)
}
