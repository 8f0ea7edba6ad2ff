package domain

import "time"

// CompareOptions configures one comparison run.
type CompareOptions struct {
	// TopN limits tallying to the first N hits of each side in ranking
	// order. Zero means all hits.
	TopN int
}

// Report is the outcome of reconciling one query's two hit lists.
type Report struct {
	// RunID uniquely identifies the comparison run that produced this
	// report.
	RunID string

	// QueryName is the shared search query.
	QueryName string

	// Old and New are the fully classified partitions.
	Old *Partition
	New *Partition

	// Tally counts terminal categories within the TopN prefix.
	Tally CategoryTally

	// Baseline is the inferred snapshot date of the old search's
	// directory; zero when the old side had nothing to resolve.
	Baseline time.Time
}

// Unresolved returns hits from both sides that lacked a canonical
// identifier and could not be classified.
func (r *Report) Unresolved() []*Hit {
	out := make([]*Hit, 0, len(r.Old.Unresolved)+len(r.New.Unresolved))
	out = append(out, r.Old.Unresolved...)
	return append(out, r.New.Unresolved...)
}
