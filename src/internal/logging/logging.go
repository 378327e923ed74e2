// Package logging builds the logrus logger shared by the CLI and pipeline.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out (stderr when nil) at level.
// An unparsable level falls back to info and is reported once at warn.
func New(level string, out io.Writer) *logrus.Logger {
	if out == nil {
		out = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		if level != "" {
			log.WithField("level", level).Warn("unknown log level, using info")
		}
		return log
	}
	log.SetLevel(lvl)
	return log
}
