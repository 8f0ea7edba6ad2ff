package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

func TestServer_handleCompare(t *testing.T) {
	ctx := context.Background()

	t.Run("returns per-query tallies", func(t *testing.T) {
		compare := &mockCompareService{
			reports: []*domain.Report{
				testReport("queryA", domain.CategoryTally{Equal: 3, Suppressed: 1, New: 2}),
			},
		}
		hits := &mockHitSource{hits: map[string][]*domain.Hit{
			"old.blast": nil,
			"new.blast": nil,
		}}

		server, err := NewServer(&Ports{Compare: compare, Hits: hits})
		require.NoError(t, err)

		input := CompareInput{OldPath: "old.blast", NewPath: "new.blast"}
		_, output, err := server.handleCompare(ctx, nil, input)

		require.NoError(t, err)
		require.Len(t, output.Reports, 1)
		report := output.Reports[0]
		assert.Equal(t, "queryA", report.Query)
		assert.Equal(t, "2020-06-01", report.Baseline)
		assert.Equal(t, 3, report.Tally["equal"])
		assert.Equal(t, 1, report.Tally["suppressed"])
		assert.Equal(t, 2, report.Tally["new"])
		assert.Equal(t, 0, report.Tally["strange"])
		assert.Equal(t, 6, report.Total)
		assert.Equal(t, 0, report.Unresolved)
	})

	t.Run("returns error on unreadable input", func(t *testing.T) {
		hits := &mockHitSource{err: errors.New("no such file")}
		server, err := NewServer(&Ports{Compare: &mockCompareService{}, Hits: hits})
		require.NoError(t, err)

		_, _, err = server.handleCompare(ctx, nil, CompareInput{OldPath: "missing"})
		assert.Error(t, err)
	})

	t.Run("returns error on comparison failure", func(t *testing.T) {
		compare := &mockCompareService{err: domain.ErrQuerySetMismatch}
		server, err := NewServer(&Ports{Compare: compare, Hits: &mockHitSource{}})
		require.NoError(t, err)

		_, _, err = server.handleCompare(ctx, nil, CompareInput{})
		assert.ErrorIs(t, err, domain.ErrQuerySetMismatch)
	})
}

func TestServer_handleLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("returns records in request order", func(t *testing.T) {
		lookup := &mockLookupService{
			records: map[string]domain.DirectoryRecord{
				"100": {Status: domain.RecordAlive, Created: time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC)},
				"200": {Status: domain.RecordReplaced, ReplacedBy: "300"},
			},
		}
		server, err := NewServer(&Ports{
			Compare: &mockCompareService{},
			Lookup:  lookup,
			Hits:    &mockHitSource{},
		})
		require.NoError(t, err)

		input := LookupInput{IDs: []string{"200", "100", "999"}}
		_, output, err := server.handleLookup(ctx, nil, input)

		require.NoError(t, err)
		require.Len(t, output.Records, 3)

		assert.Equal(t, "200", output.Records[0].ID)
		assert.True(t, output.Records[0].Found)
		assert.Equal(t, "replaced", output.Records[0].Status)
		assert.Equal(t, "300", output.Records[0].ReplacedBy)

		assert.Equal(t, "100", output.Records[1].ID)
		assert.Equal(t, "2018-01-02", output.Records[1].Created)

		assert.Equal(t, "999", output.Records[2].ID)
		assert.False(t, output.Records[2].Found)
	})

	t.Run("returns error on lookup failure", func(t *testing.T) {
		lookup := &mockLookupService{err: errors.New("directory down")}
		server, err := NewServer(&Ports{
			Compare: &mockCompareService{},
			Lookup:  lookup,
			Hits:    &mockHitSource{},
		})
		require.NoError(t, err)

		_, _, err = server.handleLookup(ctx, nil, LookupInput{IDs: []string{"100"}})
		assert.Error(t, err)
	})
}
