package services

import (
	"context"
	"fmt"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/core/ports/driving"
)

// Ensure LookupService implements the interface.
var _ driving.LookupService = (*LookupService)(nil)

// LookupService resolves identifiers for ad-hoc inspection, outside a
// comparison run.
type LookupService struct {
	dir driven.DirectoryService
}

// NewLookupService creates a lookup service over the directory.
func NewLookupService(dir driven.DirectoryService) *LookupService {
	return &LookupService{dir: dir}
}

// Lookup resolves identifier numbers to directory records in one batch.
func (s *LookupService) Lookup(ctx context.Context, ids []string) (map[string]domain.DirectoryRecord, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no identifiers given", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(ids))
	deduped := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}

	records, err := s.dir.LookupBatch(ctx, deduped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryLookup, err)
	}
	return records, nil
}
