package storefront

import "sync"

// Status is the cross-cutting state carried by every entity collection.
type Status struct {
	Loading       bool
	Error         string
	UsingFallback bool
}

// Collection is an in-memory mirror of one server-owned entity family plus
// its loading/error/fallback flags. Every fetch replaces the whole backing
// slice; there is no incremental merge. Derived views are computed on read
// from a snapshot, never cached.
type Collection[T any] struct {
	mu     sync.Mutex
	items  []T
	status Status
}

// NewCollection returns an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Items returns a snapshot of the backing slice.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of cached entities.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Status returns the current loading/error/fallback flags.
func (c *Collection[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Find returns the first entity matching pred. Absence is a defined result,
// not a failure.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns every entity matching pred, preserving order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []T
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// BeginFetch marks the collection loading and clears any prior error.
func (c *Collection[T]) BeginFetch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Loading = true
	c.status.Error = ""
}

// CompleteFetch replaces the collection with an authoritative result and
// leaves degraded mode.
func (c *Collection[T]) CompleteFetch(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.status = Status{}
}

// AdoptFallback replaces the collection with a non-authoritative substitute
// and flags degraded mode. The failure message stays visible.
func (c *Collection[T]) AdoptFallback(items []T, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.status = Status{Error: msg, UsingFallback: true}
}

// FailFetch records a fetch failure without touching the cached entities.
func (c *Collection[T]) FailFetch(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Loading = false
	c.status.Error = msg
}

// SetError records a failure message outside the fetch lifecycle, e.g. a
// rejected mutation.
func (c *Collection[T]) SetError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Error = msg
}

// Mutate applies an in-place edit to the backing slice under the lock.
func (c *Collection[T]) Mutate(edit func([]T) []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = edit(c.items)
}
