package domain

// Partition is one side's hit collection split into named buckets during
// reconciliation.
//
// All preserves the input in ranking order and always holds every hit.
// Unknown holds hits not yet placed in a terminal bucket; reconciliation
// drains it. After a run completes, every hit in All sits in exactly one
// terminal bucket and |All| equals the sum of the terminal bucket sizes
// (plus Unresolved, which holds hits the engine could not classify).
type Partition struct {
	// All is the input as given, ranking order preserved.
	All []*Hit

	// Unknown holds hits with no counterpart found yet.
	Unknown []*Hit

	// Same holds hits with an exact counterpart on the other side.
	Same []*Hit

	// Similar holds hits with an approximate counterpart.
	Similar []*Hit

	// Replacement holds old hits superseded by a confirmed replacement,
	// and on the new side the confirmed replacements themselves.
	Replacement []*Hit

	// Lost holds old hits still alive in the directory but absent from
	// the new search.
	Lost []*Hit

	// Suppressed holds old hits whose directory entry was removed.
	Suppressed []*Hit

	// New holds new-side hits introduced since the old search.
	New []*Hit

	// Strange holds new-side hits older than the old search's snapshot.
	Strange []*Hit

	// Unresolved holds hits without a canonical identifier; the engine
	// cannot classify them automatically and surfaces them instead.
	Unresolved []*Hit
}

// NewPartition builds a partition with every hit initially unknown.
func NewPartition(hits []*Hit) *Partition {
	p := &Partition{
		All:     hits,
		Unknown: make([]*Hit, 0, len(hits)),
	}
	p.Unknown = append(p.Unknown, hits...)
	return p
}

// TerminalCount returns the number of hits placed in terminal buckets,
// unresolved hits included.
func (p *Partition) TerminalCount() int {
	return len(p.Same) + len(p.Similar) + len(p.Replacement) +
		len(p.Lost) + len(p.Suppressed) + len(p.New) + len(p.Strange) +
		len(p.Unresolved)
}

// Complete reports whether every hit has left the unknown bucket and the
// terminal buckets cover All.
func (p *Partition) Complete() bool {
	return len(p.Unknown) == 0 && p.TerminalCount() == len(p.All)
}

// Bucket returns the members of the named terminal category.
// Categories follow HitStatus values; "all" returns the full input.
func (p *Partition) Bucket(category HitStatus) []*Hit {
	switch category {
	case StatusEqual:
		return p.Same
	case StatusSimilar:
		return p.Similar
	case StatusLive:
		return p.Lost
	case StatusReplaced:
		return p.Replacement
	case StatusSuppressed:
		return p.Suppressed
	case StatusNew:
		return p.New
	case StatusStrange:
		return p.Strange
	default:
		return nil
	}
}
