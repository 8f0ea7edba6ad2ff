// Package directory composes directory-service adapters. The Cached
// wrapper sits between the reconciliation engine and a network-backed
// directory client, serving repeated lookups from a local cache.
package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// Ensure Cached implements the interface.
var _ driven.DirectoryService = (*Cached)(nil)

// Cached is a caching decorator over a directory service. Answers
// already in the cache never reach the wrapped service; freshly fetched
// answers are written back stamped with this process's fetch ID.
type Cached struct {
	service driven.DirectoryService
	cache   driven.DirectoryCache
	fetchID string
}

// NewCached wraps a directory service with a cache.
func NewCached(service driven.DirectoryService, cache driven.DirectoryCache) *Cached {
	return &Cached{
		service: service,
		cache:   cache,
		fetchID: uuid.New().String(),
	}
}

// LookupBatch serves identifiers from the cache where possible and
// fetches only the rest.
func (c *Cached) LookupBatch(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, error) {
	records, missing, err := c.cache.Get(ctx, ids)
	if err != nil {
		// A broken cache degrades to a plain fetch.
		logger.Warn("directory cache read failed: %v", err)
		records, missing = map[string]domain.DirectoryRecord{}, ids
	}

	if len(missing) == 0 {
		logger.Debug("directory: all %d identifiers served from cache", len(ids))
		return records, nil
	}
	logger.Debug("directory: %d cached, fetching %d", len(records), len(missing))

	fetched, err := c.service.LookupBatch(ctx, missing)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, c.fetchID, fetched); err != nil {
		logger.Warn("directory cache write failed: %v", err)
	}

	for id, rec := range fetched {
		records[id] = rec
	}
	return records, nil
}
