package cli

import (
	"io"

	"github.com/rs/zerolog"
)

// VerboseLogger writes verbose debug messages to a writer (intended for stderr).
// All messages are prefixed with "verbose: " for grep-ability.
// A nil VerboseLogger is a no-op (safe to call Log on nil receiver).
type VerboseLogger struct {
	logger zerolog.Logger
}

// NewVerboseLogger creates a VerboseLogger that writes to the given writer.
func NewVerboseLogger(w io.Writer) *VerboseLogger {
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i interface{}) string {
			if lvl, ok := i.(string); ok && lvl == zerolog.LevelWarnValue {
				return "verbose: warning:"
			}
			return "verbose:"
		},
	}
	return &VerboseLogger{logger: zerolog.New(out).Level(zerolog.DebugLevel)}
}

// Log writes a verbose-prefixed message. Safe to call on a nil receiver (no-op).
func (vl *VerboseLogger) Log(msg string) {
	if vl == nil {
		return
	}
	vl.logger.Debug().Msg(msg)
}

// Warn writes a verbose-prefixed warning. Safe to call on a nil receiver (no-op).
func (vl *VerboseLogger) Warn(msg string) {
	if vl == nil {
		return
	}
	vl.logger.Warn().Msg(msg)
}
