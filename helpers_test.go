package callz

import (
	"sync"

	"github.com/rs/zerolog"
)

// recordSink keeps every emitted line for inspection.
type recordSink struct {
	lines  []string
	levels []zerolog.Level
	mu     sync.Mutex
}

func (s *recordSink) Emit(level zerolog.Level, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	s.levels = append(s.levels, level)
}

func (s *recordSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *recordSink) Levels() []zerolog.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]zerolog.Level, len(s.levels))
	copy(out, s.levels)
	return out
}

func add(a, b int) int {
	return a + b
}

type counter struct {
	n int
}

func (c *counter) Inc(by int) int {
	c.n += by
	return c.n
}
