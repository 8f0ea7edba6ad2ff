package memory

import (
	"context"
	"sync"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.DirectoryCache = (*Cache)(nil)

// Cache is an in-memory implementation of driven.DirectoryCache.
// Entries never expire; TTL handling belongs to the persistent cache.
type Cache struct {
	mu      sync.RWMutex
	records map[string]domain.DirectoryRecord
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{records: make(map[string]domain.DirectoryRecord)}
}

// Get returns cached records and the identifiers that missed.
func (c *Cache) Get(_ context.Context, ids []string) (map[string]domain.DirectoryRecord, []string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	found := make(map[string]domain.DirectoryRecord)
	var missing []string
	for _, id := range ids {
		if rec, ok := c.records[id]; ok {
			found[id] = rec
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

// Put stores records.
func (c *Cache) Put(_ context.Context, _ string, records map[string]domain.DirectoryRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, rec := range records {
		c.records[id] = rec
	}
	return nil
}

// Close is a no-op.
func (c *Cache) Close() error {
	return nil
}
