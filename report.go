package callz

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Line markers.
const (
	callMarker   = "→"
	returnMarker = "←"
)

// FormatDuration renders d for a log line.
//
// Durations under one second are shown in milliseconds with two decimals
// below 100ms and one decimal above ("0.00ms", "88.78ms", "250.5ms").
// Longer durations are shown in seconds with two decimals below 10s, one
// below 100s and none above ("2.07s", "42.5s", "360s"). Negative durations
// are shown as zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		prec := 2
		if ms >= 100 {
			prec = 1
		}
		return strconv.FormatFloat(ms, 'f', prec, 64) + "ms"
	}

	s := d.Seconds()
	prec := 0
	switch {
	case s < 10:
		prec = 2
	case s < 100:
		prec = 1
	}
	return strconv.FormatFloat(s, 'f', prec, 64) + "s"
}

// TallyLine describes one call in the context of its running tally.
//
//	pkg.sleep took 30.00ms; 3 calls, avg 20.00ms, total 60.00ms
func TallyLine(elapsed time.Duration, t Tally) string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString(" took ")
	b.WriteString(FormatDuration(elapsed))
	b.WriteString("; ")
	b.WriteString(callCount(t.Count))
	b.WriteString(", avg ")
	b.WriteString(FormatDuration(t.Average()))
	b.WriteString(", total ")
	b.WriteString(FormatDuration(t.Total))
	return b.String()
}

// SummaryLine describes a tally for a summary report.
//
//	pkg.sleep: 3 calls, total 60.00ms, avg 20.00ms
func SummaryLine(t Tally) string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString(": ")
	b.WriteString(callCount(t.Count))
	b.WriteString(", total ")
	b.WriteString(FormatDuration(t.Total))
	b.WriteString(", avg ")
	b.WriteString(FormatDuration(t.Average()))
	return b.String()
}

func callCount(n int64) string {
	if n == 1 {
		return "1 call"
	}
	return strconv.FormatInt(n, 10) + " calls"
}

// entryLine renders the line logged before a call.
//
//	→ pkg.add(5, 5)
func entryLine(name, args string, showArgs bool) string {
	if !showArgs {
		return callMarker + " " + name
	}
	return callMarker + " " + name + "(" + args + ")"
}

// exitLine renders the line logged after a call. result is omitted when
// empty; outcome describes a failure.
//
//	← pkg.add took 0.01ms, returned 10
//	← pkg.div took 0.01ms, failed: error "division by zero"
func exitLine(label string, elapsed time.Duration, result, failure string) string {
	var b strings.Builder
	b.WriteString(returnMarker)
	b.WriteByte(' ')
	b.WriteString(label)
	b.WriteString(" took ")
	b.WriteString(FormatDuration(elapsed))
	switch {
	case failure != "":
		b.WriteString(", failed: ")
		b.WriteString(failure)
	case result != "":
		b.WriteString(", returned ")
		b.WriteString(result)
	}
	return b.String()
}

// LogTallies emits a summary line for every tally in the default registry
// through the default sink at info level. Call it at a checkpoint or at the
// end of main:
//
//	defer callz.LogTallies()
//
// WithSink, WithLogFunc, WithRegistry and WithLevel redirect the report;
// other options are ignored.
func LogTallies(opts ...Option) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	registry := cfg.registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	registry.Log(cfg.sink, cfg.level)
}

// Log emits a summary line for every tally through sink at the given level.
// A nil sink means DefaultSink. An empty registry produces a single
// "no tallied calls" line. Sink panics are contained.
func (r *Registry) Log(sink Sink, level zerolog.Level) {
	if sink == nil {
		sink = DefaultSink()
	}

	emitted := false
	for t := range r.Summarize() {
		emitted = true
		emitSafe(sink, level, SummaryLine(t), nil)
	}
	if !emitted {
		emitSafe(sink, level, "no tallied calls", nil)
	}
}

// emitSafe hands line to sink, containing any panic raised by the sink.
func emitSafe(sink Sink, level zerolog.Level, line string, onPanic func(r any)) {
	defer func() {
		if r := recover(); r != nil {
			notify(onPanic, r)
		}
	}()
	sink.Emit(level, line)
}
