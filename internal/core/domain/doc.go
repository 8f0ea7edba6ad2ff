// Package domain defines the core business entities for blastdiff.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Hit: one alignment result from a tabular BLAST file
//   - Partition: the named buckets a hit collection is split into
//   - DirectoryRecord: what the sequence directory knows about an identifier
//   - CategoryTally: per-category counts for one query's comparison
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
