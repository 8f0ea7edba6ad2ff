package hitfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.HitExporter = (*Writer)(nil)

// Writer exports classified hits in the input's tabular format with the
// terminal category appended as a final column.
type Writer struct{}

// NewWriter creates a tabular writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write writes hits to w, one line each.
func (wr *Writer) Write(w io.Writer, hits []*domain.Hit) error {
	for _, h := range hits {
		if _, err := fmt.Fprintln(w, FormatHit(h)); err != nil {
			return fmt.Errorf("writing hit: %w", err)
		}
	}
	return nil
}

// ExportCategory writes one query's category bucket to
// <dir>/<query>_<category>.blast and returns the path written.
func (wr *Writer) ExportCategory(dir, queryName, category string, hits []*domain.Hit) (string, error) {
	path := filepath.Join(dir, SanitiseFilename(queryName)+"_"+category+".blast")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := wr.Write(f, hits); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return path, nil
}

// FormatHit renders a hit as a tabular line, status column last.
// Unclassified hits get an empty status column.
func FormatHit(h *domain.Hit) string {
	return strings.Join(h.Fields, "\t") + "\t" + string(h.Status)
}

// SanitiseFilename strips characters that are unsafe in filenames from
// a query name.
func SanitiseFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune("-_.() ", r):
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "query"
	}
	return b.String()
}
