package callz

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/zoobzio/clockz"
)

// Option configures a Decorator.
type Option func(*config)

// config is the logging configuration of a Decorator.
// It is copied into every wrapped function and never mutated afterwards.
//
//nolint:govet // Field order groups related options
type config struct {
	sink       Sink
	registry   *Registry
	clock      clockz.Clock
	repr       func(any) string
	panicHook  func(r any)
	hooks      []func(Call)
	name       string
	truncate   int
	slowerThan time.Duration
	level      zerolog.Level

	log         bool
	showArgs    bool
	showReturn  bool
	callsOnly   bool
	returnsOnly bool
	timingOnly  bool
	gated       bool
	tally       bool
	tallyLog    bool
	disabled    bool
}

func defaultConfig() config {
	return config{
		clock:      clockz.RealClock,
		truncate:   DefaultTruncate,
		level:      zerolog.InfoLevel,
		log:        true,
		showArgs:   true,
		showReturn: true,
	}
}

func (c *config) validate() error {
	if c.callsOnly && c.returnsOnly {
		return fmt.Errorf("%w: calls-only and returns-only are mutually exclusive", ErrConflictingOptions)
	}
	if c.callsOnly && c.timingOnly {
		return fmt.Errorf("%w: calls-only and timing-only are mutually exclusive", ErrConflictingOptions)
	}
	if c.callsOnly && c.gated {
		return fmt.Errorf("%w: calls-only cannot be combined with a slower-than threshold", ErrConflictingOptions)
	}
	if c.truncate <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTruncate, c.truncate)
	}
	if c.slowerThan < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidThreshold, c.slowerThan)
	}
	if c.level < zerolog.TraceLevel || c.level > zerolog.PanicLevel {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, c.level)
	}
	return nil
}

// WithLogging enables or disables call logging. Enabled by default.
func WithLogging(enabled bool) Option {
	return func(c *config) { c.log = enabled }
}

// WithArgs controls whether arguments appear in the call line. Default true.
func WithArgs(show bool) Option {
	return func(c *config) { c.showArgs = show }
}

// WithReturnValue controls whether the return value appears in the return
// line. Default true.
func WithReturnValue(show bool) Option {
	return func(c *config) { c.showReturn = show }
}

// WithTruncate sets the maximum number of characters kept from any
// formatted value. Default DefaultTruncate.
func WithTruncate(n int) Option {
	return func(c *config) { c.truncate = n }
}

// CallsOnly logs the call line and never the return line.
// Conflicts with ReturnsOnly, TimingOnly and IfSlowerThan.
func CallsOnly() Option {
	return func(c *config) { c.callsOnly = true }
}

// ReturnsOnly logs the return line and never the call line.
func ReturnsOnly() Option {
	return func(c *config) { c.returnsOnly = true }
}

// TimingOnly logs a single return line with the elapsed time and no
// arguments or return value.
func TimingOnly() Option {
	return func(c *config) { c.timingOnly = true }
}

// IfSlowerThan suppresses every line of a call that completes in less than d.
// The call line is deferred until the duration is known, so the arguments
// are shown on the return line instead.
func IfSlowerThan(d time.Duration) Option {
	return func(c *config) {
		c.gated = true
		c.slowerThan = d
	}
}

// WithLevel sets the severity of emitted lines. Default zerolog.InfoLevel.
// Return lines of failed calls are emitted at least at zerolog.WarnLevel.
func WithLevel(level zerolog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithSink sends lines to sink instead of DefaultSink.
func WithSink(sink Sink) Option {
	return func(c *config) { c.sink = sink }
}

// WithLogFunc sends fully formatted lines to fn instead of DefaultSink.
func WithLogFunc(fn func(line string)) Option {
	return func(c *config) {
		if fn != nil {
			c.sink = SinkFunc(fn)
		}
	}
}

// WithRepr replaces the default value formatting. The truncation limit is
// still applied to whatever fn returns. A panicking fn yields Unreprable.
func WithRepr(fn func(v any) string) Option {
	return func(c *config) { c.repr = fn }
}

// WithTally enables or disables tallying into the registry.
func WithTally(enabled bool) Option {
	return func(c *config) { c.tally = enabled }
}

// WithTallyLog logs a running-statistics line after every tallied call.
// It implies WithTally(true).
func WithTallyLog(enabled bool) Option {
	return func(c *config) {
		c.tallyLog = enabled
		if enabled {
			c.tally = true
		}
	}
}

// WithRegistry tallies into r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithClock sets the clock used to time calls.
// Enables clock injection for deterministic testing.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithName overrides the function identity used for log lines and tallies.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithHook registers fn to receive every completed call.
// Hooks run synchronously after logging and tallying; panics are contained.
func WithHook(fn func(Call)) Option {
	return func(c *config) {
		if fn != nil {
			c.hooks = append(c.hooks, fn)
		}
	}
}

// WithPanicHook sets a function called when a formatter, sink or hook panics.
func WithPanicHook(fn func(r any)) Option {
	return func(c *config) { c.panicHook = fn }
}

// WithDisabled turns wrapped functions into plain pass-through calls.
func WithDisabled(disabled bool) Option {
	return func(c *config) { c.disabled = disabled }
}
