// Package driving defines the interfaces through which the outside world
// drives the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI, TUI, and MCP adapters call core services through these
// interfaces.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
