package cache

import (
	"context"
	"sync"
)

// MemoryLinkCache is an in-process LinkCache used when no Redis is configured.
type MemoryLinkCache struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryLinkCache() *MemoryLinkCache {
	return &MemoryLinkCache{m: make(map[string]string)}
}

func (c *MemoryLinkCache) GetMany(ctx context.Context, links []string) (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]string)
	for _, l := range uniqueLinks(links) {
		if expanded, ok := c.m[l]; ok {
			out[l] = expanded
		}
	}
	return out, nil
}

func (c *MemoryLinkCache) PutMany(ctx context.Context, results map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for l, expanded := range results {
		c.m[l] = expanded
	}
	return nil
}
