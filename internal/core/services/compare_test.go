package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastwatch/blastdiff/internal/adapters/driven/storage/memory"
	"github.com/blastwatch/blastdiff/internal/comparators/blast"
	"github.com/blastwatch/blastdiff/internal/core/domain"
)

func newTestService(dir *memory.Directory) *CompareService {
	return NewCompareService(blast.New(domain.DefaultTolerances()), dir)
}

// scenarioDirectory covers the canonical three-fates fixture: one alive
// entry, one replaced entry with a confirmed successor, one suppressed.
func scenarioDirectory() *memory.Directory {
	return memory.NewDirectory(map[string]domain.DirectoryRecord{
		"100": {Status: domain.RecordAlive, Created: day(2014, 1, 1)},
		"200": {Status: domain.RecordReplaced, ReplacedBy: "201", Created: day(2013, 5, 1)},
		"300": {Status: domain.RecordSuppressed, Created: day(2012, 8, 1)},
		"201": {Status: domain.RecordAlive, Created: day(2014, 6, 1)},
	})
}

func scenarioHits() (oldHits, newHits []*domain.Hit) {
	a := testHit("Q1", "100", 0)
	b := testHit("Q1", "200", 1)
	c := testHit("Q1", "300", 2)

	aNew := testHit("Q1", "100", 0)
	replacement := testHit("Q1", "201", 1)

	return []*domain.Hit{a, b, c}, []*domain.Hit{aNew, replacement}
}

func TestCompareQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("reconciles the three-fates scenario", func(t *testing.T) {
		oldHits, newHits := scenarioHits()
		svc := newTestService(scenarioDirectory())

		report, err := svc.CompareQuery(ctx, "Q1", oldHits, newHits, domain.CompareOptions{})
		require.NoError(t, err)

		assert.Equal(t, domain.CategoryTally{
			Equal: 1, Replaced: 1, Suppressed: 1,
		}, report.Tally)

		assert.True(t, report.Old.Complete(), "old partition must be complete")
		assert.True(t, report.New.Complete(), "new partition must be complete")
		assert.Empty(t, report.Old.Lost)
		assert.Empty(t, report.New.New)
		assert.Empty(t, report.New.Strange)
		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, day(2014, 1, 1), report.Baseline)
	})

	t.Run("every hit lands in exactly one terminal bucket", func(t *testing.T) {
		oldHits, newHits := scenarioHits()
		svc := newTestService(scenarioDirectory())

		report, err := svc.CompareQuery(ctx, "Q1", oldHits, newHits, domain.CompareOptions{})
		require.NoError(t, err)

		assert.Equal(t, len(oldHits), report.Old.TerminalCount())
		assert.Equal(t, len(newHits), report.New.TerminalCount())
		for _, h := range oldHits {
			assert.True(t, h.Status.Terminal(), "old hit %v unclassified", h.IDs)
		}
		for _, h := range newHits {
			assert.True(t, h.Status.Terminal(), "new hit %v unclassified", h.IDs)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		svc := newTestService(scenarioDirectory())

		oldA, newA := scenarioHits()
		first, err := svc.CompareQuery(ctx, "Q1", oldA, newA, domain.CompareOptions{})
		require.NoError(t, err)

		oldB, newB := scenarioHits()
		second, err := svc.CompareQuery(ctx, "Q1", oldB, newB, domain.CompareOptions{})
		require.NoError(t, err)

		assert.Equal(t, first.Tally, second.Tally)
		for i := range oldA {
			assert.Equal(t, oldA[i].Status, oldB[i].Status)
		}
	})

	t.Run("stale replacement pointer falls back to lost", func(t *testing.T) {
		dir := memory.NewDirectory(map[string]domain.DirectoryRecord{
			"200": {Status: domain.RecordReplaced, ReplacedBy: "999", Created: day(2013, 5, 1)},
		})
		oldHits := []*domain.Hit{testHit("Q1", "200", 1)}

		report, err := newTestService(dir).CompareQuery(ctx, "Q1", oldHits, nil, domain.CompareOptions{})
		require.NoError(t, err)

		assert.Equal(t, 1, report.Tally.Live)
		assert.Equal(t, 0, report.Tally.Replaced)
		assert.True(t, report.Old.Complete())
	})

	t.Run("unmatched new hit older than baseline is strange", func(t *testing.T) {
		dir := memory.NewDirectory(map[string]domain.DirectoryRecord{
			"100": {Status: domain.RecordAlive, Created: day(2014, 1, 1)},
			"400": {Status: domain.RecordAlive, Created: day(2013, 12, 31)},
		})
		oldHits := []*domain.Hit{testHit("Q1", "100", 0)}
		newHits := []*domain.Hit{testHit("Q1", "400", 3)}

		report, err := newTestService(dir).CompareQuery(ctx, "Q1", oldHits, newHits, domain.CompareOptions{})
		require.NoError(t, err)

		assert.Equal(t, 1, report.Tally.Strange)
		assert.Equal(t, 1, report.Tally.Live)
	})

	t.Run("hit without canonical identifier is surfaced, not fatal", func(t *testing.T) {
		dir := memory.NewDirectory(map[string]domain.DirectoryRecord{
			"100": {Status: domain.RecordAlive, Created: day(2014, 1, 1)},
		})
		noGI := &domain.Hit{
			QueryName: "Q1",
			IDs:       []domain.SeqID{{DB: "ref", Num: "NC_1"}},
			Alignment: alignmentFromSeed(7),
		}
		oldHits := []*domain.Hit{testHit("Q1", "100", 0), noGI}

		report, err := newTestService(dir).CompareQuery(ctx, "Q1", oldHits, nil, domain.CompareOptions{})
		require.NoError(t, err)

		require.Len(t, report.Old.Unresolved, 1)
		assert.Same(t, noGI, report.Old.Unresolved[0])
		assert.True(t, report.Old.Complete())
		assert.Equal(t, domain.StatusUnclassified, noGI.Status)
		assert.Len(t, report.Unresolved(), 1)
	})

	t.Run("directory failure aborts the query", func(t *testing.T) {
		dir := memory.NewDirectory(nil)
		dir.SetError(errors.New("entrez unreachable"))
		oldHits := []*domain.Hit{testHit("Q1", "100", 0)}

		_, err := newTestService(dir).CompareQuery(ctx, "Q1", oldHits, nil, domain.CompareOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDirectoryLookup)
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("compares queries independently in old input order", func(t *testing.T) {
		dir := scenarioDirectory()
		svc := newTestService(dir)

		oldHits := []*domain.Hit{
			testHit("Q2", "100", 0),
			testHit("Q1", "300", 2),
		}
		newHits := []*domain.Hit{
			testHit("Q1", "100", 5),
			testHit("Q2", "100", 0),
		}
		// Q1's only new hit is unrelated to its old hit.
		dir.Put("100", domain.DirectoryRecord{Status: domain.RecordAlive, Created: day(2014, 1, 1)})

		reports, err := svc.Run(ctx, oldHits, newHits, domain.CompareOptions{})
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, "Q2", reports[0].QueryName)
		assert.Equal(t, "Q1", reports[1].QueryName)
		assert.Equal(t, 1, reports[0].Tally.Equal)
	})

	t.Run("mismatched query sets are fatal", func(t *testing.T) {
		svc := newTestService(memory.NewDirectory(nil))

		oldHits := []*domain.Hit{testHit("Q1", "100", 0)}
		newHits := []*domain.Hit{testHit("Q2", "100", 0)}

		_, err := svc.Run(ctx, oldHits, newHits, domain.CompareOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrQuerySetMismatch)
		assert.Contains(t, err.Error(), "Q1 (old only)")
		assert.Contains(t, err.Error(), "Q2 (new only)")
	})
}
