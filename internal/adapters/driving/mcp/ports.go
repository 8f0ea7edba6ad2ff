package mcp

import (
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Compare reconciles hit lists.
	Compare driving.CompareService

	// Lookup resolves identifiers against the directory.
	Lookup driving.LookupService

	// Hits reads tabular BLAST result files.
	Hits driven.HitSource
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Compare == nil {
		return ErrMissingCompareService
	}
	if p.Hits == nil {
		return ErrMissingHitSource
	}
	// Lookup is optional; without it the lookup tool is not registered.
	return nil
}
