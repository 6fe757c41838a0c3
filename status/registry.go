package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Counter names recorded by the session loop
const (
	Frames    = "frames"
	Events    = "events"
	Moves     = "moves"
	Auditions = "auditions"

	IntentPrefix = "intent."
)

// Registry holds named monotonic counters.
// Lookup takes a lock; the returned pointer can be cached and bumped lock-free.
type Registry struct {
	mu    sync.RWMutex
	items map[string]*atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*atomic.Int64)}
}

// Counter returns the counter for key, creating it at zero on first use
func (r *Registry) Counter(key string) *atomic.Int64 {
	r.mu.RLock()
	c, ok := r.items[key]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[key]; ok {
		return c
	}
	c = new(atomic.Int64)
	r.items[key] = c
	return c
}

// Inc adds one to key
func (r *Registry) Inc(key string) {
	r.Counter(key).Add(1)
}

// Get reads key without creating it
func (r *Registry) Get(key string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.items[key]; ok {
		return c.Load()
	}
	return 0
}

// Range visits counters in sorted key order
func (r *Registry) Range(fn func(key string, value int64)) {
	r.mu.RLock()
	keys := make([]string, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)

	for _, k := range keys {
		fn(k, r.Get(k))
	}
}

// KeyVals flattens the counters into alternating key/value pairs for structured logging
func (r *Registry) KeyVals() []any {
	var kv []any
	r.Range(func(key string, value int64) {
		kv = append(kv, key, value)
	})
	return kv
}
