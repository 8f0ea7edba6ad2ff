// Package services implements the reconciliation engine.
//
// A comparison run for one query is strictly sequential, each phase
// consuming the previous phase's unmatched set:
//
//  1. Matcher pairs the two hit lists (equal/similar).
//  2. Resolver learns the fate of every unmatched old hit from the
//     sequence directory in one batched lookup.
//  3. Linker confirms directory replacement pointers against the new
//     side's unmatched hits.
//  4. Resolver learns creation dates for the remaining unmatched new
//     hits; the recency step splits them into new and strange.
//  5. Aggregator tallies terminal categories over the ranked prefix.
//
// Services depend only on domain types and driven ports. Separate
// queries share no mutable state and may be compared concurrently by
// the caller.
package services
