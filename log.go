package hunkgrep

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the diagnostics logger. Diff output never goes through it.
func NewLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.WarnLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	out := w
	switch format {
	case "", "console":
		out = zerolog.ConsoleWriter{
			Out:          w,
			NoColor:      true,
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}
	return zerolog.New(out).Level(lvl), nil
}

func logWarning(log zerolog.Logger, w Warning) {
	log.Warn().
		Int("line", w.Line).
		Str("state", w.State.String()).
		Str("text", w.Text).
		Msg(w.Kind.Message())
}
