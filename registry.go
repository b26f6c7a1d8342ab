package callz

import (
	"iter"
	"slices"
	"sync"
	"time"
)

// Tally is a snapshot of the calls observed for one function.
type Tally struct {
	Key   Key           `json:"key"`
	Name  string        `json:"name"`
	Count int64         `json:"count"`
	Total time.Duration `json:"total"`
}

// Average returns the mean duration of the tallied calls.
func (t Tally) Average() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

type entry struct {
	name  string
	count int64
	total time.Duration
}

// Registry accumulates call tallies per function.
// Safe for concurrent use by multiple goroutines.
type Registry struct {
	entries map[Key]*entry
	order   []Key
	mu      sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Key]*entry),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by decorators that
// were not given one.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Record adds one call of the given duration to the tally for key, creating
// the tally on first use. It returns the updated tally.
// Negative durations are counted as zero.
func (r *Registry) Record(key Key, name string, elapsed time.Duration) Tally {
	if elapsed < 0 {
		elapsed = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		if name == "" {
			name = DisplayName(key)
		}
		e = &entry{name: name}
		r.entries[key] = e
		r.order = append(r.order, key)
	}
	e.count++
	e.total += elapsed

	return Tally{Key: key, Name: e.name, Count: e.count, Total: e.total}
}

// Get returns the current tally for key.
func (r *Registry) Get(key Key) (Tally, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return Tally{}, false
	}
	return Tally{Key: key, Name: e.name, Count: e.count, Total: e.total}, true
}

// Summarize returns the tallies in first-recorded order.
// Each iteration fixes the set of keys when it starts and reads every tally
// as it reaches it, so concurrent Record calls may or may not be reflected.
// Tallies removed by Reset during an iteration are skipped.
func (r *Registry) Summarize() iter.Seq[Tally] {
	return func(yield func(Tally) bool) {
		r.mu.Lock()
		keys := slices.Clone(r.order)
		r.mu.Unlock()

		for _, key := range keys {
			t, ok := r.Get(key)
			if !ok {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Snapshot returns all tallies in first-recorded order.
func (r *Registry) Snapshot() []Tally {
	return slices.Collect(r.Summarize())
}

// Len returns the number of tallied functions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset clears all tallies.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries)
	r.order = r.order[:0]
}
