package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger writes human-readable log lines to w. Verbose shows debug
// events from the renderer; quiet keeps only errors.
func newLogger(w io.Writer, verbose, quiet bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
