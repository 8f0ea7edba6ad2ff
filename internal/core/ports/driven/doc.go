// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - HitComparator: pairwise equivalence predicate between two hits
//   - DirectoryService: batched identifier lookups against the
//     sequence directory
//   - HitSource: reads tabular BLAST files into hits
//
// # Optional Interfaces
//
//   - DirectoryCache: persists lookup answers between runs; without it
//     every run goes to the network
//   - HitExporter: writes classified hits back out as tabular files
//   - ConfigStore: persisted application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
