// Package logger configures zerolog for the CLI and the editor.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Setup builds a logger writing to out and sets the global level.
//   - level: trace, debug, info, warn, error, fatal, panic, disabled
//   - format: "pretty" for console output, anything else for JSON lines
//
// Unknown levels fall back to info.
func Setup(level, format string, out io.Writer) zerolog.Logger {
	var writer io.Writer = out
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
		}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).
		With().
		Timestamp().
		Logger()
}
