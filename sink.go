package callz

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// Sink receives fully formatted log lines.
// Implementations must be safe for concurrent use.
type Sink interface {
	Emit(level zerolog.Level, line string)
}

// SinkFunc adapts a plain function to a Sink. The level is dropped.
type SinkFunc func(line string)

// Emit calls f(line).
func (f SinkFunc) Emit(_ zerolog.Level, line string) {
	f(line)
}

// ZerologSink writes each line as the message of a zerolog event.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink creates a sink on top of an existing zerolog logger.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

// Emit writes line at the given level.
func (s *ZerologSink) Emit(level zerolog.Level, line string) {
	s.logger.WithLevel(level).Msg(line)
}

var defaultSink = sync.OnceValue(func() Sink {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("component", "callz").Logger()
	return NewZerologSink(logger)
})

// DefaultSink returns the process-wide sink used when none is configured.
// It logs JSON lines to stderr.
func DefaultSink() Sink {
	return defaultSink()
}

// ConsoleSink writes human-readable lines, coloured by level.
// Safe for concurrent use by multiple goroutines.
type ConsoleSink struct {
	w      io.Writer
	colors map[zerolog.Level]*color.Color
	mu     sync.Mutex
}

// NewConsoleSink creates a console sink writing to w.
// When colored is false, lines are written without escape codes.
func NewConsoleSink(w io.Writer, colored bool) *ConsoleSink {
	colors := map[zerolog.Level]*color.Color{
		zerolog.TraceLevel: color.New(color.FgHiBlack),
		zerolog.DebugLevel: color.New(color.FgCyan),
		zerolog.InfoLevel:  color.New(color.Reset),
		zerolog.WarnLevel:  color.New(color.FgYellow),
		zerolog.ErrorLevel: color.New(color.FgRed),
		zerolog.FatalLevel: color.New(color.FgRed, color.Bold),
		zerolog.PanicLevel: color.New(color.FgRed, color.Bold),
	}
	for _, c := range colors {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &ConsoleSink{w: w, colors: colors}
}

// Emit writes line followed by a newline.
func (s *ConsoleSink) Emit(level zerolog.Level, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colors[level]
	if !ok {
		c = s.colors[zerolog.InfoLevel]
	}
	_, _ = c.Fprintln(s.w, line)
}
