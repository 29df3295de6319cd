package teklinicv

import (
	"container/list"
	"sync"
)

// DefaultCacheSize is the number of override roots whose environments are
// kept alive at once.
const DefaultCacheSize = 8

// environmentCache keeps the most recently used environments, keyed by
// override root, and evicts the least recently used one when full.
// A capacity of 1 keeps a single environment at a time.
type environmentCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recent; values are *Environment
	byRoot   map[string]*list.Element
}

func newEnvironmentCache(capacity int) *environmentCache {
	if capacity < 1 {
		capacity = 1
	}
	return &environmentCache{
		capacity: capacity,
		order:    list.New(),
		byRoot:   make(map[string]*list.Element),
	}
}

// get returns the cached environment for root, creating it with build on a
// miss.
func (c *environmentCache) get(root string, build func(root string) *Environment) *Environment {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byRoot[root]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*Environment)
	}

	env := build(root)
	c.byRoot[root] = c.order.PushFront(env)
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.byRoot, oldest.Value.(*Environment).Root())
	}
	return env
}

// len returns the number of cached environments.
func (c *environmentCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// contains reports whether root is cached, without touching recency.
func (c *environmentCache) contains(root string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.byRoot[root]
	return ok
}
