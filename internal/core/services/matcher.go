package services

import (
	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// Matcher partitions two hit collections into matched and unmatched
// subsets using the injected comparator.
type Matcher struct {
	cmp driven.HitComparator
}

// NewMatcher creates a matcher over the given comparator.
func NewMatcher(cmp driven.HitComparator) *Matcher {
	return &Matcher{cmp: cmp}
}

// Match pairs new hits against old hits.
//
// Each new hit is checked against the still-unmatched old hits in input
// order; the first candidate the comparator links wins. The comparator
// is not guaranteed to be injective, so this first-in-input-order
// tie-break is what makes runs deterministic. Matched pairs land in the
// Same or Similar bucket on both sides and leave Unknown; hits are not
// mutated here — statuses are assigned by the compare service once a
// category is final.
func (m *Matcher) Match(newHits, oldHits []*domain.Hit) (*domain.Partition, *domain.Partition) {
	newPart := domain.NewPartition(newHits)
	oldPart := domain.NewPartition(oldHits)

	remaining := append([]*domain.Hit(nil), oldHits...)
	newUnknown := make([]*domain.Hit, 0, len(newHits))

	for _, nh := range newHits {
		idx := -1
		verdict := driven.VerdictNone
		for i, oh := range remaining {
			if v := m.cmp.Compare(nh, oh); v.Matched() {
				idx, verdict = i, v
				break
			}
		}
		if idx < 0 {
			newUnknown = append(newUnknown, nh)
			continue
		}

		oh := remaining[idx]
		remaining = append(remaining[:idx:idx], remaining[idx+1:]...)

		if verdict == driven.VerdictEqual {
			newPart.Same = append(newPart.Same, nh)
			oldPart.Same = append(oldPart.Same, oh)
		} else {
			newPart.Similar = append(newPart.Similar, nh)
			oldPart.Similar = append(oldPart.Similar, oh)
		}
	}

	newPart.Unknown = newUnknown
	oldPart.Unknown = remaining

	logger.Debug("matched %d equal, %d similar; %d old and %d new hits unmatched",
		len(oldPart.Same), len(oldPart.Similar), len(oldPart.Unknown), len(newPart.Unknown))

	return newPart, oldPart
}
