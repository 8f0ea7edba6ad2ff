package services

import (
	"context"
	"time"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// testHit builds a hit whose alignment is derived from seed, so hits
// with equal seeds compare equal and hits with different seeds are
// unrelated.
func testHit(query, gi string, seed int) *domain.Hit {
	return &domain.Hit{
		QueryName: query,
		IDs:       []domain.SeqID{{DB: "gi", Num: gi}},
		Alignment: alignmentFromSeed(seed),
	}
}

func alignmentFromSeed(seed int) domain.Alignment {
	return domain.Alignment{
		PctIdentity:  99.0,
		Length:       500 + seed*1000,
		Mismatches:   seed,
		GapOpens:     0,
		QueryStart:   1,
		QueryEnd:     500 + seed*1000,
		SubjectStart: 1 + seed*10000,
		SubjectEnd:   500 + seed*11000,
		EValue:       1e-40,
		BitScore:     900 + float64(seed)*300,
	}
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// mockDirectory records the identifier batches it was asked for.
type mockDirectory struct {
	records map[string]domain.DirectoryRecord
	err     error
	batches [][]string
}

func (m *mockDirectory) LookupBatch(_ context.Context, ids []string) (map[string]domain.DirectoryRecord, error) {
	m.batches = append(m.batches, append([]string(nil), ids...))
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]domain.DirectoryRecord, len(ids))
	for _, id := range ids {
		if rec, ok := m.records[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}
