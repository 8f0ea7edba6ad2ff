// Package hitfile reads and writes tabular BLAST result files.
//
// The expected layout is the standard tabular format with the
// all-subject-ids column: qseqid, sseqid, pident, length, mismatch,
// gapopen, qstart, qend, sstart, send, evalue, bitscore, sallseqid,
// optionally followed by further columns, which are preserved verbatim.
package hitfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
)

// Column indices in the tabular format.
const (
	colQuery      = 0
	colSubjectID  = 1
	colPctIdent   = 2
	colLength     = 3
	colMismatch   = 4
	colGapOpen    = 5
	colQueryStart = 6
	colQueryEnd   = 7
	colSubjStart  = 8
	colSubjEnd    = 9
	colEValue     = 10
	colBitScore   = 11
	colAllIDs     = 12

	minColumns = 13
)

// Ensure Reader implements the interface.
var _ driven.HitSource = (*Reader)(nil)

// Reader parses tabular BLAST results into hits.
type Reader struct{}

// NewReader creates a tabular reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile parses a tabular file into hits in input order.
func (rd *Reader) ReadFile(path string) ([]*domain.Hit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	hits, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hits, nil
}

// Read parses a tabular stream into hits in input order.
//
// A row whose all-subject-ids column aggregates several identifiers
// (';' separated) describes one alignment attributed to several
// underlying entries; it expands into one hit per identifier so each
// can be reconciled separately.
func (rd *Reader) Read(r io.Reader) ([]*domain.Hit, error) {
	var hits []*domain.Hit

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			return nil, fmt.Errorf("line %d: %w: %d columns, want at least %d",
				lineNo, domain.ErrInvalidInput, len(fields), minColumns)
		}

		if fields[colSubjectID] == fields[colAllIDs] {
			hit, err := parseHit(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			hits = append(hits, hit)
			continue
		}

		for _, sub := range strings.Split(fields[colAllIDs], ";") {
			expanded := append([]string(nil), fields...)
			expanded[colSubjectID] = sub
			expanded[colAllIDs] = sub

			hit, err := parseHit(expanded)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			hits = append(hits, hit)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return hits, nil
}

func parseHit(fields []string) (*domain.Hit, error) {
	align, err := parseAlignment(fields)
	if err != nil {
		return nil, err
	}

	return &domain.Hit{
		QueryName: fields[colQuery],
		IDs:       ParseSeqIDs(fields[colSubjectID]),
		Alignment: align,
		Fields:    fields,
	}, nil
}

func parseAlignment(fields []string) (domain.Alignment, error) {
	var align domain.Alignment
	var err error

	floats := []struct {
		col  int
		name string
		dst  *float64
	}{
		{colPctIdent, "percent identity", &align.PctIdentity},
		{colEValue, "e-value", &align.EValue},
		{colBitScore, "bit score", &align.BitScore},
	}
	for _, f := range floats {
		*f.dst, err = strconv.ParseFloat(strings.TrimSpace(fields[f.col]), 64)
		if err != nil {
			return align, fmt.Errorf("%w: bad %s %q", domain.ErrInvalidInput, f.name, fields[f.col])
		}
	}

	ints := []struct {
		col  int
		name string
		dst  *int
	}{
		{colLength, "alignment length", &align.Length},
		{colMismatch, "mismatches", &align.Mismatches},
		{colGapOpen, "gap opens", &align.GapOpens},
		{colQueryStart, "query start", &align.QueryStart},
		{colQueryEnd, "query end", &align.QueryEnd},
		{colSubjStart, "subject start", &align.SubjectStart},
		{colSubjEnd, "subject end", &align.SubjectEnd},
	}
	for _, f := range ints {
		*f.dst, err = strconv.Atoi(strings.TrimSpace(fields[f.col]))
		if err != nil {
			return align, fmt.Errorf("%w: bad %s %q", domain.ErrInvalidInput, f.name, fields[f.col])
		}
	}

	return align, nil
}

// ParseSeqIDs splits a pipe-delimited subject id like
// "gi|568815581|ref|NC_000001.11|" into identifier pairs. A bare
// accession without namespace markers becomes a single pair with an
// empty database.
func ParseSeqIDs(s string) []domain.SeqID {
	s = strings.Trim(s, "|")
	if s == "" {
		return nil
	}

	tokens := strings.Split(s, "|")
	if len(tokens) == 1 {
		return []domain.SeqID{{Num: tokens[0]}}
	}

	ids := make([]domain.SeqID, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		ids = append(ids, domain.SeqID{DB: tokens[i], Num: tokens[i+1]})
	}
	return ids
}
