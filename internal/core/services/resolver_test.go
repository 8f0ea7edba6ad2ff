package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("deduplicates identifiers into one batch", func(t *testing.T) {
		dir := &mockDirectory{records: map[string]domain.DirectoryRecord{
			"100": {Status: domain.RecordAlive},
			"200": {Status: domain.RecordAlive},
		}}
		hits := []*domain.Hit{
			testHit("Q1", "100", 0),
			testHit("Q1", "100", 1),
			testHit("Q1", "200", 2),
		}

		records, unresolved, err := NewResolver(dir).Resolve(ctx, hits)
		require.NoError(t, err)
		assert.Empty(t, unresolved)
		assert.Len(t, records, 2)
		require.Len(t, dir.batches, 1)
		assert.Equal(t, []string{"100", "200"}, dir.batches[0])
	})

	t.Run("surfaces hits without canonical identifier", func(t *testing.T) {
		dir := &mockDirectory{records: map[string]domain.DirectoryRecord{
			"100": {Status: domain.RecordAlive},
		}}
		noGI := &domain.Hit{
			QueryName: "Q1",
			IDs:       []domain.SeqID{{DB: "ref", Num: "NC_1"}},
		}
		hits := []*domain.Hit{testHit("Q1", "100", 0), noGI}

		records, unresolved, err := NewResolver(dir).Resolve(ctx, hits)
		require.NoError(t, err)
		assert.Len(t, records, 1)
		require.Len(t, unresolved, 1)
		assert.Same(t, noGI, unresolved[0])
	})

	t.Run("no identifiers means no network call", func(t *testing.T) {
		dir := &mockDirectory{}

		records, _, err := NewResolver(dir).Resolve(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Empty(t, dir.batches)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		dir := &mockDirectory{err: errors.New("service unreachable")}

		_, _, err := NewResolver(dir).Resolve(ctx, []*domain.Hit{testHit("Q1", "100", 0)})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDirectoryLookup)
	})

	t.Run("missing entry is a lookup failure, not a default", func(t *testing.T) {
		dir := &mockDirectory{records: map[string]domain.DirectoryRecord{}}

		_, _, err := NewResolver(dir).Resolve(ctx, []*domain.Hit{testHit("Q1", "100", 0)})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDirectoryLookup)
		assert.Contains(t, err.Error(), "100")
	})
}
