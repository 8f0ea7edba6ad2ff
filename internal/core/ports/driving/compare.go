package driving

import (
	"context"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// CompareService reconciles two snapshots of hit lists and classifies
// every hit into a lifecycle category.
type CompareService interface {
	// Run groups both inputs by query name, verifies the query sets
	// match, and compares each query independently. Reports come back
	// in the old input's query order.
	Run(ctx context.Context, oldHits, newHits []*domain.Hit, opts domain.CompareOptions) ([]*domain.Report, error)

	// CompareQuery reconciles one query's two hit lists.
	CompareQuery(ctx context.Context, queryName string, oldHits, newHits []*domain.Hit, opts domain.CompareOptions) (*domain.Report, error)
}

// LookupService resolves identifiers against the sequence directory,
// for ad-hoc inspection.
type LookupService interface {
	// Lookup resolves identifier numbers to directory records.
	Lookup(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, error)
}
