package driven

import (
	"context"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// DirectoryService resolves canonical identifiers against the external
// sequence directory.
//
// Implementations must be safe for concurrent batched calls; the engine
// issues one deduplicated batch per resolution phase and does not retry
// or rate-limit internally — that responsibility belongs to the adapter.
type DirectoryService interface {
	// LookupBatch resolves a set of identifier numbers in one call.
	// The returned mapping must contain an entry for every requested
	// identifier; a missing entry is a lookup failure, never a default.
	LookupBatch(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, error)
}

// DirectoryCache persists directory answers between runs so repeated
// comparisons of the same searches stay off the network.
type DirectoryCache interface {
	// Get returns cached records for the requested identifiers and the
	// subset that was absent or stale.
	Get(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, []string, error)

	// Put stores freshly fetched records, stamped with the run that
	// fetched them.
	Put(ctx context.Context, runID string, records map[string]domain.DirectoryRecord) error

	// Close releases resources.
	Close() error
}
