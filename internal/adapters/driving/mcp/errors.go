// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants run BLAST result comparisons and directory
// lookups as tools.
package mcp

import "errors"

// ErrMissingCompareService is returned when the compare service is not provided.
var ErrMissingCompareService = errors.New("mcp: compare service is required")

// ErrMissingHitSource is returned when the hit source is not provided.
var ErrMissingHitSource = errors.New("mcp: hit source is required")
