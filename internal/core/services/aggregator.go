package services

import "github.com/blastwatch/blastdiff/internal/core/domain"

// Aggregator produces per-category counts from classified partitions.
type Aggregator struct{}

// Tally counts terminal categories within the first topN hits of each
// side's input, in ranking order; topN = 0 considers everything. The
// truncation is a ranking cutoff, not a sample: callers asking for the
// top 50 want the fate of the 50 best-scoring hits.
//
// Old-side hits contribute equal/similar/live/replaced/suppressed;
// new-side hits contribute only new/strange, so a pair matched across
// both sides is counted once. Zero counts stay in the tally — hiding
// empty categories is the report renderer's business.
func (Aggregator) Tally(oldPart, newPart *domain.Partition, topN int) domain.CategoryTally {
	var tally domain.CategoryTally

	for _, h := range rankedPrefix(oldPart.All, topN) {
		tally.Add(h.Status)
	}
	for _, h := range rankedPrefix(newPart.All, topN) {
		if h.Status == domain.StatusNew || h.Status == domain.StatusStrange {
			tally.Add(h.Status)
		}
	}

	return tally
}

func rankedPrefix(hits []*domain.Hit, topN int) []*domain.Hit {
	if topN <= 0 || topN >= len(hits) {
		return hits
	}
	return hits[:topN]
}
