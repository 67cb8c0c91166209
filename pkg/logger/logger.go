package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps the CLI level names onto zerolog levels. Unknown names
// fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "debug", "verbose", "verb":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warning", "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "quiet", "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New builds a console logger writing to w at the given level.
func New(w io.Writer, level string) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(cw).Level(ParseLevel(level)).With().Timestamp().Logger()
}
