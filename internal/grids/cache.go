package grids

import (
	"sync"

	"schedproc/internal"
)

// Cache holds decoded grids keyed by file ID. Its lifetime is the process,
// not a single export run; Clear is a user-invoked, cross-run action.
type Cache struct {
	mu    sync.Mutex
	grids map[string]internal.Grid
}

func NewCache() *Cache {
	return &Cache{grids: map[string]internal.Grid{}}
}

func (c *Cache) Get(fileID string) (internal.Grid, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.grids[fileID]
	return g, ok
}

func (c *Cache) Put(fileID string, g internal.Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grids[fileID] = g
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grids = map[string]internal.Grid{}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.grids)
}
