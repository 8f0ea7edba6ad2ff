// Package memory provides in-memory implementations of the driven
// storage and directory ports, used in tests and offline runs.
package memory

import (
	"context"
	"sync"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
)

// Ensure Directory implements the interface.
var _ driven.DirectoryService = (*Directory)(nil)

// Directory is an in-memory implementation of driven.DirectoryService.
// Lookups answer from a fixed record set; identifiers without a record
// are simply absent from the result, as a real directory would omit
// unknown ids.
type Directory struct {
	mu      sync.RWMutex
	records map[string]domain.DirectoryRecord
	err     error
	calls   int
}

// NewDirectory creates an in-memory directory with the given records.
func NewDirectory(records map[string]domain.DirectoryRecord) *Directory {
	if records == nil {
		records = make(map[string]domain.DirectoryRecord)
	}
	return &Directory{records: records}
}

// SetError makes every subsequent lookup fail with err.
func (d *Directory) SetError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// Put adds or replaces a record.
func (d *Directory) Put(id string, rec domain.DirectoryRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[id] = rec
}

// Calls returns how many batched lookups were issued.
func (d *Directory) Calls() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.calls
}

// LookupBatch resolves the requested identifiers against the fixed set.
func (d *Directory) LookupBatch(_ context.Context, ids []string) (map[string]domain.DirectoryRecord, error) {
	d.mu.Lock()
	d.calls++
	err := d.err
	d.mu.Unlock()

	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]domain.DirectoryRecord, len(ids))
	for _, id := range ids {
		if rec, ok := d.records[id]; ok {
			out[id] = rec
		}
	}
	return out, nil
}
