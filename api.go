// Package callz provides call logging and call tallies for plain Go functions.
//
// callz wraps a function so that each invocation is logged (arguments,
// return value, elapsed time) and/or tallied (call count, total and average
// time) without changing what the function returns. It is meant for ad-hoc
// visibility during development and lightweight profiling in production.
//
// Core Components:
//   - Decorator: Validated logging configuration that wraps functions.
//   - Registry: Per-function call tallies, safe for concurrent use.
//   - Sink: Destination for formatted log lines (zerolog by default).
//   - FormatValue: Bounded, panic-free rendering of arguments and results.
//
// Basic Usage:
//
//	logged := callz.Must(callz.New())
//	add := callz.Func2(logged, func(a, b int) int { return a + b })
//	add(5, 5)
//	// → callz_test.TestAdd.func1(5, 5)
//	// ← callz_test.TestAdd.func1 took 0.00ms, returned 10
//
//	tallied := callz.Must(callz.NewTally())
//	fetch := callz.FuncE1(tallied, client.Fetch)
//	defer callz.LogTallies()
//
// Wrapped Functions:
//
// Go has no variadic generics, so wrapping is done by arity-specific helpers
// (Func0..Func3, FuncE0..FuncE3, Action, ActionE, CtxE0..CtxE2). Each returns
// a function with exactly the signature it was given. Decorator.Wrap covers
// dynamic call sites.
//
// Transparency:
//
// Returned errors are passed back unchanged and panics are re-raised with the
// original value after the call has been logged and tallied. A call that
// never returns control (runtime.Goexit) is neither logged at exit nor
// tallied.
//
// Thread Safety:
//
// Wrapped functions run synchronously on the calling goroutine and start no
// goroutines of their own. Registry is safe for concurrent use; readers of
// Summarize may observe entries that are still being updated.
//
// Diagnostics:
//
// Formatting and sink failures never reach the caller. A panicking formatter
// degrades to "<unrepr-able value>" and a panicking sink drops the line.
// Use WithPanicHook to observe those failures.
package callz

// Key identifies a wrapped function in a Registry.
// It is the fully qualified function name reported by the runtime.
type Key = string
