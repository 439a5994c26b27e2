package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. Release mode logs JSON,
// anything else logs human-readable text. Unknown levels fall back to info.
func Setup(level, ginMode string) {
	log.SetOutput(os.Stdout)

	if ginMode == "release" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
		log.WithField("level", level).Warn("unknown log level, using info")
	}
	log.SetLevel(lvl)
}
