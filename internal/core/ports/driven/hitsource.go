package driven

import (
	"io"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// HitSource reads tabular BLAST results into hits.
//
// The source expands rows whose subject-id column aggregates several
// identifiers into one hit per identifier before the engine sees them:
// the engine assumes one identifier set represents one logical entity's
// aliases, never several entities merged into a row.
type HitSource interface {
	// Read parses a tabular stream into hits in input order.
	Read(r io.Reader) ([]*domain.Hit, error)

	// ReadFile parses a tabular file into hits in input order.
	ReadFile(path string) ([]*domain.Hit, error)
}

// HitExporter writes classified hits back out in the input's tabular
// format with the terminal category appended.
type HitExporter interface {
	// Write writes hits to w.
	Write(w io.Writer, hits []*domain.Hit) error

	// ExportCategory writes one query's category bucket to a file named
	// after the query and category, returning the path written.
	ExportCategory(dir, queryName string, category string, hits []*domain.Hit) (string, error)
}
