package driven

import "github.com/blastwatch/blastdiff/internal/core/domain"

// Verdict is a comparator's judgement of two hits.
type Verdict int

const (
	// VerdictNone means the hits are unrelated.
	VerdictNone Verdict = iota

	// VerdictSimilar means the hits describe the same alignment with
	// minor attribute drift.
	VerdictSimilar

	// VerdictEqual means the hits are indistinguishable.
	VerdictEqual
)

// Matched reports whether the verdict links the two hits.
func (v Verdict) Matched() bool {
	return v != VerdictNone
}

// HitComparator decides whether two hits describe the same alignment.
//
// The concrete similarity criteria are an injected policy, not a fixed
// algorithm: thresholds evolve independently of the engine. Two modes
// exist because replacement linking must compare a hit against its
// directory-declared successor, whose identifiers necessarily differ.
type HitComparator interface {
	// Compare judges two hits identity-aware: unrelated identities yield
	// VerdictNone regardless of attributes.
	Compare(a, b *domain.Hit) Verdict

	// CompareAttributes judges alignment attributes only, ignoring
	// identifiers.
	CompareAttributes(a, b *domain.Hit) Verdict
}
