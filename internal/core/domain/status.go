package domain

// HitStatus is the lifecycle category assigned to a hit by the
// reconciliation engine. The zero value means not yet classified; every
// other value is terminal and assigned exactly once.
type HitStatus string

const (
	// StatusUnclassified is the initial state before reconciliation.
	StatusUnclassified HitStatus = ""

	// StatusEqual marks a hit found unchanged in both searches.
	StatusEqual HitStatus = "equal"

	// StatusSimilar marks a hit found in both searches with minor
	// attribute drift.
	StatusSimilar HitStatus = "similar"

	// StatusLive marks an old hit whose sequence still exists in the
	// directory but produced no counterpart in the new search: lost.
	StatusLive HitStatus = "live"

	// StatusReplaced marks an old hit superseded by a confirmed
	// replacement on the new side.
	StatusReplaced HitStatus = "replaced"

	// StatusSuppressed marks an old hit whose directory entry was
	// deliberately removed or deprecated.
	StatusSuppressed HitStatus = "suppressed"

	// StatusNew marks a new hit genuinely introduced since the old search.
	StatusNew HitStatus = "new"

	// StatusStrange marks a new hit whose creation date predates the old
	// search's directory snapshot; it should have appeared there already.
	StatusStrange HitStatus = "strange"
)

// Terminal reports whether the status is a final classification.
func (s HitStatus) Terminal() bool {
	return s != StatusUnclassified
}

// Categories lists every terminal category in report order.
func Categories() []HitStatus {
	return []HitStatus{
		StatusEqual,
		StatusSimilar,
		StatusLive,
		StatusReplaced,
		StatusSuppressed,
		StatusNew,
		StatusStrange,
	}
}

// RecordStatus is the lifecycle status the sequence directory reports
// for an identifier.
type RecordStatus string

const (
	// RecordAlive means the entry still exists in the directory.
	RecordAlive RecordStatus = "live"

	// RecordReplaced means the entry was superseded; DirectoryRecord
	// carries the forward pointer.
	RecordReplaced RecordStatus = "replaced"

	// RecordSuppressed means the entry was removed or deprecated.
	RecordSuppressed RecordStatus = "suppressed"
)
