package services

import (
	"context"
	"fmt"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// Resolver orchestrates batched status lookups for unmatched hits.
type Resolver struct {
	dir driven.DirectoryService
}

// NewResolver creates a resolver over the given directory service.
func NewResolver(dir driven.DirectoryService) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve looks up the directory record for every hit's canonical
// identifier in a single deduplicated batch.
//
// Hits without a canonical identifier come back in the second return
// value; they cannot be classified automatically and must be surfaced
// to the caller, not defaulted. The directory is rate-governed, so one
// batch per resolution phase is the contract: never one call per hit.
func (r *Resolver) Resolve(ctx context.Context, hits []*domain.Hit) (map[string]domain.DirectoryRecord, []*domain.Hit, error) {
	seen := make(map[string]bool, len(hits))
	ids := make([]string, 0, len(hits))
	var unresolved []*domain.Hit

	for _, h := range hits {
		num, ok := h.CanonicalID()
		if !ok {
			logger.Warn("hit in query %q has no %s identifier, cannot classify", h.QueryName, domain.CanonicalDB)
			unresolved = append(unresolved, h)
			continue
		}
		if !seen[num] {
			seen[num] = true
			ids = append(ids, num)
		}
	}

	if len(ids) == 0 {
		return map[string]domain.DirectoryRecord{}, unresolved, nil
	}

	logger.Debug("resolving %d identifiers (%d hits)", len(ids), len(hits))

	records, err := r.dir.LookupBatch(ctx, ids)
	if err != nil {
		return nil, unresolved, fmt.Errorf("%w: %w", domain.ErrDirectoryLookup, err)
	}

	// A silent gap would classify hits off missing data; refuse instead.
	for _, id := range ids {
		if _, ok := records[id]; !ok {
			return nil, unresolved, fmt.Errorf("%w: no entry for %s %s", domain.ErrDirectoryLookup, domain.CanonicalDB, id)
		}
	}

	return records, unresolved, nil
}
