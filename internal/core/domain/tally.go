package domain

// CategoryTally counts hits per terminal category for one query's
// comparison run. A fixed struct over the closed category set rather
// than a map, so a missed category is a compile error, not a silent gap.
// Zero counts are kept; hiding empty categories is a display decision.
type CategoryTally struct {
	Equal      int
	Similar    int
	Live       int
	Replaced   int
	Suppressed int
	New        int
	Strange    int
}

// Add increments the count for a terminal status. Unclassified hits are
// not counted.
func (t *CategoryTally) Add(s HitStatus) {
	switch s {
	case StatusEqual:
		t.Equal++
	case StatusSimilar:
		t.Similar++
	case StatusLive:
		t.Live++
	case StatusReplaced:
		t.Replaced++
	case StatusSuppressed:
		t.Suppressed++
	case StatusNew:
		t.New++
	case StatusStrange:
		t.Strange++
	}
}

// Count returns the tally for one category.
func (t CategoryTally) Count(s HitStatus) int {
	switch s {
	case StatusEqual:
		return t.Equal
	case StatusSimilar:
		return t.Similar
	case StatusLive:
		return t.Live
	case StatusReplaced:
		return t.Replaced
	case StatusSuppressed:
		return t.Suppressed
	case StatusNew:
		return t.New
	case StatusStrange:
		return t.Strange
	default:
		return 0
	}
}

// Total returns the sum over all categories.
func (t CategoryTally) Total() int {
	return t.Equal + t.Similar + t.Live + t.Replaced + t.Suppressed +
		t.New + t.Strange
}
