package logger

import (
	"github.com/sirupsen/logrus"
)

// Log is the process-wide application logger.
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Log.SetLevel(logrus.InfoLevel)
}
