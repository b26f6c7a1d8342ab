package callz

import (
	"fmt"
	"time"
)

// Call describes one completed invocation of a wrapped function.
// A Call is built on the caller's stack and handed to hooks by value.
//
//nolint:govet // Field alignment optimized for JSON serialization order
type Call struct {
	Start    time.Time     `json:"start"`
	End      time.Time     `json:"end"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
	Panic    any           `json:"-"`
	Key      Key           `json:"key"`
	Name     string        `json:"name"`
	Args     string        `json:"args,omitempty"`
	Result   string        `json:"result,omitempty"`
}

// Failed reports whether the call returned an error or panicked.
func (c *Call) Failed() bool {
	return c.Err != nil || c.Panic != nil
}

// Outcome returns a short description of how the call ended.
func (c *Call) Outcome() string {
	switch {
	case c.Panic != nil:
		return fmt.Sprintf("panic: %v", c.Panic)
	case c.Err != nil:
		return "error: " + c.Err.Error()
	default:
		return "ok"
	}
}
