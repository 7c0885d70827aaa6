package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger.
// format "json" writes one JSON object per line; anything else writes
// human-readable console output. An unparsable level falls back to info.
func Init(level, format string) zerolog.Logger {
	return InitWithWriter(level, format, os.Stderr)
}

// InitWithWriter is Init writing to out
func InitWithWriter(level, format string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	w := out
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lvl)
	log.Logger = logger
	// log.Ctx falls back to this logger for contexts without one
	zerolog.DefaultContextLogger = &log.Logger
	return logger
}
