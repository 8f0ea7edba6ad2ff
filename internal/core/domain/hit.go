package domain

import "fmt"

// CanonicalDB is the identifier namespace used to query the sequence
// directory. Hits may carry identifiers under several namespaces (gi,
// ref, gb, ...) but only gi numbers resolve against Entrez.
const CanonicalDB = "gi"

// SeqID is one (database, number) identifier pair attached to a hit.
// A hit usually carries several: "gi|568815581|ref|NC_000001.11|"
// yields (gi, 568815581) and (ref, NC_000001.11).
type SeqID struct {
	// DB is the identifier namespace, e.g. "gi", "ref", "gb".
	DB string

	// Num is the identifier within the namespace. Kept as a string:
	// gi numbers are numeric but accessions like NC_000001.11 are not.
	Num string
}

// String returns the pair in BLAST pipe notation.
func (id SeqID) String() string {
	return fmt.Sprintf("%s|%s", id.DB, id.Num)
}

// Alignment holds the comparable attributes of one BLAST alignment,
// matching the standard tabular columns. The comparator decides how much
// drift between two alignments still counts as the same hit.
type Alignment struct {
	PctIdentity  float64
	Length       int
	Mismatches   int
	GapOpens     int
	QueryStart   int
	QueryEnd     int
	SubjectStart int
	SubjectEnd   int
	EValue       float64
	BitScore     float64
}

// Hit is one alignment result from a tabular BLAST file.
//
// A Hit is created once by the file reader, classified exactly once by
// the reconciliation engine (Status transitions from StatusUnclassified
// to a terminal category and never changes again), and retained for
// export afterwards.
type Hit struct {
	// QueryName groups hits by the search query that produced them.
	QueryName string

	// IDs is the ordered identifier list for the subject sequence.
	IDs []SeqID

	// Alignment carries the comparable alignment attributes.
	Alignment Alignment

	// Fields preserves the tabular columns as read, so export can
	// reproduce the input format.
	Fields []string

	// Status is the lifecycle category, set once by the engine.
	Status HitStatus
}

// CanonicalID returns the hit's identifier under the canonical directory
// namespace, or false if the hit carries none.
func (h *Hit) CanonicalID() (string, bool) {
	for _, id := range h.IDs {
		if id.DB == CanonicalDB {
			return id.Num, true
		}
	}
	return "", false
}

// HasID reports whether the hit carries the given identifier number
// under any namespace.
func (h *Hit) HasID(num string) bool {
	for _, id := range h.IDs {
		if id.Num == num {
			return true
		}
	}
	return false
}

// SharesID reports whether two hits share at least one identifier pair.
func (h *Hit) SharesID(other *Hit) bool {
	for _, a := range h.IDs {
		for _, b := range other.IDs {
			if a == b {
				return true
			}
		}
	}
	return false
}
