package integration

import (
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/zoobzio/callz"
	"github.com/zoobzio/clockz"
)

// MockSink records emitted lines with test utilities.
//
//nolint:govet // Field alignment optimized for test helper readability
type MockSink struct {
	lines  []string
	levels []zerolog.Level
	t      *testing.T
	mu     sync.Mutex
}

// NewMockSink creates a sink for testing.
func NewMockSink(t *testing.T) *MockSink {
	return &MockSink{t: t}
}

// Emit implements callz.Sink.
func (m *MockSink) Emit(level zerolog.Level, line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
	m.levels = append(m.levels, level)
}

// Lines returns a copy of all recorded lines.
func (m *MockSink) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// Reset drops all recorded lines.
func (m *MockSink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = m.lines[:0]
	m.levels = m.levels[:0]
}

// AssertLineCount verifies exact line count.
func (m *MockSink) AssertLineCount(expected int) {
	m.t.Helper()
	if lines := m.Lines(); len(lines) != expected {
		m.t.Errorf("Expected %d lines, got %d: %q", expected, len(lines), lines)
	}
}

// AssertContains checks that some line contains substr and returns it.
func (m *MockSink) AssertContains(substr string) string {
	m.t.Helper()
	for _, line := range m.Lines() {
		if strings.Contains(line, substr) {
			return line
		}
	}
	m.t.Errorf("No line contains %q", substr)
	return ""
}

// CountPrefix returns the number of lines starting with prefix.
func (m *MockSink) CountPrefix(prefix string) int {
	n := 0
	for _, line := range m.Lines() {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

// CountLevel returns the number of lines emitted at level.
func (m *MockSink) CountLevel(level zerolog.Level) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.levels {
		if l == level {
			n++
		}
	}
	return n
}

// Harness bundles an isolated sink, registry and fake clock.
type Harness struct {
	Sink     *MockSink
	Registry *callz.Registry
	Clock    *clockz.FakeClock
}

// NewHarness creates an isolated harness so tests never touch the default
// registry.
func NewHarness(t *testing.T) *Harness {
	return &Harness{
		Sink:     NewMockSink(t),
		Registry: callz.NewRegistry(),
		Clock:    clockz.NewFakeClock(),
	}
}

// Options returns the options that route a decorator into the harness.
func (h *Harness) Options(extra ...callz.Option) []callz.Option {
	return append([]callz.Option{
		callz.WithSink(h.Sink),
		callz.WithRegistry(h.Registry),
		callz.WithClock(h.Clock),
	}, extra...)
}

// Decorator builds a logging decorator bound to the harness.
func (h *Harness) Decorator(t *testing.T, extra ...callz.Option) *callz.Decorator {
	t.Helper()
	d, err := callz.New(h.Options(extra...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return d
}

// Tally builds a tallying decorator bound to the harness.
func (h *Harness) Tally(t *testing.T, extra ...callz.Option) *callz.Decorator {
	t.Helper()
	d, err := callz.NewTally(h.Options(extra...)...)
	if err != nil {
		t.Fatalf("NewTally failed: %v", err)
	}
	return d
}
