package callz

import (
	"reflect"
	"runtime"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Decorator wraps functions with call logging and tallying.
// A Decorator is immutable and safe for concurrent use; every function it
// wraps gets its own copy of the configuration.
type Decorator struct {
	cfg config
}

// New creates a decorator that logs calls. Options are validated here, so
// conflicting options fail before any function is wrapped.
func New(opts ...Option) (*Decorator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Decorator{cfg: cfg}, nil
}

// NewTally creates a decorator that tallies calls without logging them.
// Logging can be turned back on with WithLogging(true).
func NewTally(opts ...Option) (*Decorator, error) {
	return New(append([]Option{WithLogging(false), WithTally(true)}, opts...)...)
}

// Must panics if err is non-nil. It is intended for package-level decorators.
//
//	var logged = callz.Must(callz.New(callz.WithLevel(zerolog.DebugLevel)))
func Must(d *Decorator, err error) *Decorator {
	if err != nil {
		panic("callz: " + err.Error())
	}
	return d
}

// With returns a new decorator with opts applied on top of d's options.
func (d *Decorator) With(opts ...Option) (*Decorator, error) {
	cfg := d.cfg
	cfg.hooks = slices.Clone(d.cfg.hooks)
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Decorator{cfg: cfg}, nil
}

// site holds everything one wrapped function needs at call time.
type site struct {
	sink     Sink
	registry *Registry
	fmt      formatter
	key      Key
	name     string
	cfg      config
}

// bind resolves the identity of fn and snapshots the configuration.
// It panics if fn is nil, like the standard library does for nil handlers.
func (d *Decorator) bind(fn any) *site {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		panic("callz: cannot wrap a nil function")
	}

	cfg := d.cfg
	cfg.hooks = slices.Clone(d.cfg.hooks)

	key := cfg.name
	if key == "" {
		key = FuncKey(fn)
	}

	s := &site{
		cfg:      cfg,
		key:      key,
		name:     DisplayName(key),
		sink:     cfg.sink,
		registry: cfg.registry,
		fmt: formatter{
			repr:    cfg.repr,
			limit:   cfg.truncate,
			onPanic: cfg.panicHook,
		},
	}
	if s.sink == nil {
		s.sink = DefaultSink()
	}
	if s.registry == nil {
		s.registry = DefaultRegistry()
	}
	return s
}

// FuncKey returns the fully qualified name of fn as reported by the runtime,
// e.g. "github.com/acme/shop.(*Cart).Total". Method values lose their "-fm"
// suffix so that a method value and its method expression share a key.
func FuncKey(fn any) Key {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(rv.Pointer())
	if f == nil {
		return ""
	}
	return strings.TrimSuffix(f.Name(), "-fm")
}

// DisplayName trims the import path from a key, keeping the package name:
// "github.com/acme/shop.(*Cart).Total" becomes "shop.(*Cart).Total".
func DisplayName(key Key) string {
	if i := strings.LastIndexByte(key, '/'); i >= 0 {
		return key[i+1:]
	}
	return key
}

// noResult marks calls of functions that return nothing besides an error.
type noResult struct{}

// run times one call. call must invoke the wrapped function and return its
// result (or noResult{}) and error. Panics raised by call are re-raised with
// the same value once the call has been logged and tallied. A call that exits
// through runtime.Goexit is neither logged at exit nor tallied.
func (s *site) run(args []any, call func() (any, error)) {
	if s.cfg.disabled {
		_, _ = call()
		return
	}

	rec := Call{Key: s.key, Name: s.name}
	rec.Start = s.cfg.clock.Now()

	deferred := s.cfg.log && s.cfg.gated && s.cfg.showArgs && !s.cfg.timingOnly
	switch {
	case s.logsEntry():
		if s.cfg.showArgs {
			rec.Args = s.fmt.args(args)
		}
		s.emit(s.cfg.level, entryLine(s.name, rec.Args, s.cfg.showArgs))
	case deferred || len(s.cfg.hooks) > 0 && s.cfg.showArgs:
		rec.Args = s.fmt.args(args)
	}

	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		if r == nil {
			return
		}
		rec.Panic = r
		s.finish(&rec, noResult{}, deferred)
		panic(r)
	}()

	result, err := call()
	completed = true
	rec.Err = err
	s.finish(&rec, result, deferred)
}

func (s *site) logsEntry() bool {
	return s.cfg.log && !s.cfg.returnsOnly && !s.cfg.timingOnly && !s.cfg.gated
}

func (s *site) logsExit() bool {
	return s.cfg.log && !s.cfg.callsOnly
}

// finish completes rec and performs the exit-side logging, tallying and hooks.
func (s *site) finish(rec *Call, result any, argsOnExit bool) {
	rec.End = s.cfg.clock.Now()
	rec.Duration = rec.End.Sub(rec.Start)
	if rec.Duration < 0 {
		rec.Duration = 0
	}

	quiet := s.cfg.gated && rec.Duration < s.cfg.slowerThan

	var failure string
	switch {
	case rec.Panic != nil:
		failure = "panic " + s.fmt.value(rec.Panic)
	case rec.Err != nil:
		failure = "error " + s.fmt.value(rec.Err)
	}
	if _, none := result.(noResult); !none && rec.Panic == nil && rec.Err == nil &&
		s.cfg.showReturn && !s.cfg.timingOnly && (s.logsExit() || len(s.cfg.hooks) > 0) {
		rec.Result = s.fmt.value(result)
	}

	if s.logsExit() && !quiet {
		label := s.name
		if argsOnExit {
			label = s.name + "(" + rec.Args + ")"
		}
		level := s.cfg.level
		if rec.Failed() && level < zerolog.WarnLevel {
			level = zerolog.WarnLevel
		}
		if s.cfg.timingOnly {
			s.emit(level, exitLine(label, rec.Duration, "", ""))
		} else {
			s.emit(level, exitLine(label, rec.Duration, rec.Result, failure))
		}
	}

	if s.cfg.tally {
		t := s.registry.Record(s.key, s.name, rec.Duration)
		if s.cfg.tallyLog && !quiet {
			s.emit(s.cfg.level, TallyLine(rec.Duration, t))
		}
	}

	for _, hook := range s.cfg.hooks {
		s.safeCall(hook, *rec)
	}
}

func (s *site) emit(level zerolog.Level, line string) {
	emitSafe(s.sink, level, line, s.cfg.panicHook)
}

func (s *site) safeCall(hook func(Call), c Call) {
	defer func() {
		if r := recover(); r != nil {
			notify(s.cfg.panicHook, r)
		}
	}()
	hook(c)
}

// notify reports a contained panic to hook. A panicking hook is ignored.
func notify(hook func(r any), r any) {
	if hook == nil {
		return
	}
	defer func() { _ = recover() }()
	hook(r)
}
