package callz

import "context"

// Variadic is the shape of dynamically dispatched functions wrapped by
// Decorator.Wrap.
type Variadic func(args ...any) (any, error)

// Wrap wraps a dynamically typed function. Every argument is logged.
// Use WithName when fn is a closure whose runtime name is not meaningful.
func (d *Decorator) Wrap(fn Variadic) Variadic {
	s := d.bind(fn)
	return func(args ...any) (any, error) {
		var (
			r   any
			err error
		)
		s.run(args, func() (any, error) {
			r, err = fn(args...)
			return r, err
		})
		return r, err
	}
}

// Action wraps a function with no arguments and no results.
func Action(d *Decorator, fn func()) func() {
	s := d.bind(fn)
	return func() {
		s.run(nil, func() (any, error) {
			fn()
			return noResult{}, nil
		})
	}
}

// ActionE wraps a function that only returns an error.
func ActionE(d *Decorator, fn func() error) func() error {
	s := d.bind(fn)
	return func() error {
		var err error
		s.run(nil, func() (any, error) {
			err = fn()
			return noResult{}, err
		})
		return err
	}
}

// Func0 wraps a function with no arguments and one result.
func Func0[R any](d *Decorator, fn func() R) func() R {
	s := d.bind(fn)
	return func() R {
		var r R
		s.run(nil, func() (any, error) {
			r = fn()
			return r, nil
		})
		return r
	}
}

// Func1 wraps a function with one argument and one result.
func Func1[A, R any](d *Decorator, fn func(A) R) func(A) R {
	s := d.bind(fn)
	return func(a A) R {
		var r R
		s.run([]any{a}, func() (any, error) {
			r = fn(a)
			return r, nil
		})
		return r
	}
}

// Func2 wraps a function with two arguments and one result.
func Func2[A, B, R any](d *Decorator, fn func(A, B) R) func(A, B) R {
	s := d.bind(fn)
	return func(a A, b B) R {
		var r R
		s.run([]any{a, b}, func() (any, error) {
			r = fn(a, b)
			return r, nil
		})
		return r
	}
}

// Func3 wraps a function with three arguments and one result.
func Func3[A, B, C, R any](d *Decorator, fn func(A, B, C) R) func(A, B, C) R {
	s := d.bind(fn)
	return func(a A, b B, c C) R {
		var r R
		s.run([]any{a, b, c}, func() (any, error) {
			r = fn(a, b, c)
			return r, nil
		})
		return r
	}
}

// FuncE0 wraps a function with no arguments returning a result and an error.
func FuncE0[R any](d *Decorator, fn func() (R, error)) func() (R, error) {
	s := d.bind(fn)
	return func() (R, error) {
		var (
			r   R
			err error
		)
		s.run(nil, func() (any, error) {
			r, err = fn()
			return r, err
		})
		return r, err
	}
}

// FuncE1 wraps a function with one argument returning a result and an error.
func FuncE1[A, R any](d *Decorator, fn func(A) (R, error)) func(A) (R, error) {
	s := d.bind(fn)
	return func(a A) (R, error) {
		var (
			r   R
			err error
		)
		s.run([]any{a}, func() (any, error) {
			r, err = fn(a)
			return r, err
		})
		return r, err
	}
}

// FuncE2 wraps a function with two arguments returning a result and an error.
func FuncE2[A, B, R any](d *Decorator, fn func(A, B) (R, error)) func(A, B) (R, error) {
	s := d.bind(fn)
	return func(a A, b B) (R, error) {
		var (
			r   R
			err error
		)
		s.run([]any{a, b}, func() (any, error) {
			r, err = fn(a, b)
			return r, err
		})
		return r, err
	}
}

// FuncE3 wraps a function with three arguments returning a result and an error.
func FuncE3[A, B, C, R any](d *Decorator, fn func(A, B, C) (R, error)) func(A, B, C) (R, error) {
	s := d.bind(fn)
	return func(a A, b B, c C) (R, error) {
		var (
			r   R
			err error
		)
		s.run([]any{a, b, c}, func() (any, error) {
			r, err = fn(a, b, c)
			return r, err
		})
		return r, err
	}
}

// CtxE0 wraps a context-aware function. The context is passed through
// untouched and is not logged as an argument.
func CtxE0[R any](d *Decorator, fn func(context.Context) (R, error)) func(context.Context) (R, error) {
	s := d.bind(fn)
	return func(ctx context.Context) (R, error) {
		var (
			r   R
			err error
		)
		s.run(nil, func() (any, error) {
			r, err = fn(ctx)
			return r, err
		})
		return r, err
	}
}

// CtxE1 wraps a context-aware function with one further argument.
func CtxE1[A, R any](d *Decorator, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	s := d.bind(fn)
	return func(ctx context.Context, a A) (R, error) {
		var (
			r   R
			err error
		)
		s.run([]any{a}, func() (any, error) {
			r, err = fn(ctx, a)
			return r, err
		})
		return r, err
	}
}

// CtxE2 wraps a context-aware function with two further arguments.
func CtxE2[A, B, R any](d *Decorator, fn func(context.Context, A, B) (R, error)) func(context.Context, A, B) (R, error) {
	s := d.bind(fn)
	return func(ctx context.Context, a A, b B) (R, error) {
		var (
			r   R
			err error
		)
		s.run([]any{a, b}, func() (any, error) {
			r, err = fn(ctx, a, b)
			return r, err
		})
		return r, err
	}
}
