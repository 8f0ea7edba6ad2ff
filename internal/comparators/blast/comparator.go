// Package blast provides the default hit comparator.
//
// Equal demands identical alignment attributes; Similar tolerates the
// drift that database growth causes in re-run searches (slightly moved
// coordinates, nudged scores) as long as the subject identity matches.
// The drift bounds are configuration (see domain.Tolerances), chosen by
// calibration against real searches, not contract.
package blast

import (
	"math"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
)

// Ensure Comparator implements the interface.
var _ driven.HitComparator = (*Comparator)(nil)

// Comparator judges hit equivalence under configurable drift bounds.
type Comparator struct {
	tol domain.Tolerances
}

// New creates a comparator with the given tolerances.
func New(tol domain.Tolerances) *Comparator {
	return &Comparator{tol: tol}
}

// Compare judges two hits identity-aware. Hits that share no identifier
// pair are unrelated no matter how close their attributes are: the same
// subject can be hit at several regions and each region must stay free
// to match its own counterpart.
func (c *Comparator) Compare(a, b *domain.Hit) driven.Verdict {
	if !a.SharesID(b) {
		return driven.VerdictNone
	}
	return c.CompareAttributes(a, b)
}

// CompareAttributes judges alignment attributes only, ignoring
// identifiers. Used for replacement linking, where the successor entry
// carries different identifiers by definition.
func (c *Comparator) CompareAttributes(a, b *domain.Hit) driven.Verdict {
	if a.Alignment == b.Alignment {
		return driven.VerdictEqual
	}
	if c.withinTolerances(a.Alignment, b.Alignment) {
		return driven.VerdictSimilar
	}
	return driven.VerdictNone
}

func (c *Comparator) withinTolerances(a, b domain.Alignment) bool {
	if math.Abs(a.PctIdentity-b.PctIdentity) > c.tol.PctIdentity {
		return false
	}

	ints := [][2]int{
		{a.Length, b.Length},
		{a.Mismatches, b.Mismatches},
		{a.GapOpens, b.GapOpens},
		{a.QueryStart, b.QueryStart},
		{a.QueryEnd, b.QueryEnd},
		{a.SubjectStart, b.SubjectStart},
		{a.SubjectEnd, b.SubjectEnd},
	}
	for _, pair := range ints {
		if abs(pair[0]-pair[1]) > c.tol.Coordinates {
			return false
		}
	}

	if !withinFraction(a.BitScore, b.BitScore, c.tol.BitScoreFrac) {
		return false
	}

	return withinOrders(a.EValue, b.EValue, c.tol.EValueOrders)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func withinFraction(a, b, frac float64) bool {
	larger := math.Max(math.Abs(a), math.Abs(b))
	if larger == 0 {
		return true
	}
	return math.Abs(a-b) <= larger*frac
}

// withinOrders compares e-values on a log scale. BLAST reports exact
// matches as 0.0, which has no logarithm; clamp to the smallest value
// the report format distinguishes.
func withinOrders(a, b, orders float64) bool {
	const floor = 1e-180
	la := math.Log10(math.Max(a, floor))
	lb := math.Log10(math.Max(b, floor))
	return math.Abs(la-lb) <= orders
}
