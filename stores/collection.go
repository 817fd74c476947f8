package stores

import (
	"sync"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
)

// collection is the uniform state every admin CRUD store carries: the loaded
// page, the focused entry, pagination, and request lifecycle flags. Entries
// are keyed by server-assigned id.
type collection[T any] struct {
	mu         sync.Mutex
	items      []T
	current    *T
	pagination api.Pagination
	loading    bool
	err        string

	id func(T) int
}

func (c *collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) Current() *T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	v := *c.current
	return &v
}

func (c *collection[T]) Pagination() api.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

func (c *collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *collection[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *collection[T]) begin() {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
}

func (c *collection[T]) end() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

func (c *collection[T]) fail(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
}

func (c *collection[T]) setPage(items []T, pg api.Pagination) {
	c.mu.Lock()
	c.items = items
	c.pagination = pg
	c.mu.Unlock()
}

func (c *collection[T]) setCurrent(v T) {
	c.mu.Lock()
	c.current = &v
	c.mu.Unlock()
}

// prepend inserts a freshly created entry at the head and bumps the total.
func (c *collection[T]) prepend(v T) {
	c.mu.Lock()
	c.items = append([]T{v}, c.items...)
	c.pagination.Total++
	c.mu.Unlock()
}

// patch replaces the matching entry (and the focused one) with the server's
// authoritative copy. No refetch: entries are keyed by id and per-entity
// operations are not concurrent in practice.
func (c *collection[T]) patch(v T) {
	id := c.id(v)
	c.mu.Lock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items[i] = v
			break
		}
	}
	if c.current != nil && c.id(*c.current) == id {
		c.current = &v
	}
	c.mu.Unlock()
}

// drop removes the entry locally after a server-side soft delete.
func (c *collection[T]) drop(id int) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, v := range c.items {
		if c.id(v) != id {
			kept = append(kept, v)
		}
	}
	c.items = kept
	if c.pagination.Total > 0 {
		c.pagination.Total--
	}
	if c.current != nil && c.id(*c.current) == id {
		c.current = nil
	}
	c.mu.Unlock()
}
