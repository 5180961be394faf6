package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a console logger on w when verbose is set, otherwise a
// logger that drops everything.
func newLogger(w io.Writer, verbose, noColor bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	logWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(logWriter).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
