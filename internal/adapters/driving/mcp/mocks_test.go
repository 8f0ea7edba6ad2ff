package mcp

import (
	"context"
	"io"
	"time"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// mockCompareService is a mock implementation of driving.CompareService.
type mockCompareService struct {
	reports []*domain.Report
	err     error
}

func (m *mockCompareService) Run(
	_ context.Context,
	_, _ []*domain.Hit,
	_ domain.CompareOptions,
) ([]*domain.Report, error) {
	return m.reports, m.err
}

func (m *mockCompareService) CompareQuery(
	_ context.Context,
	_ string,
	_, _ []*domain.Hit,
	_ domain.CompareOptions,
) (*domain.Report, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.reports) == 0 {
		return nil, nil
	}
	return m.reports[0], nil
}

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	records map[string]domain.DirectoryRecord
	err     error
}

func (m *mockLookupService) Lookup(_ context.Context, _ []string) (map[string]domain.DirectoryRecord, error) {
	return m.records, m.err
}

// mockHitSource is a mock implementation of driven.HitSource.
type mockHitSource struct {
	hits map[string][]*domain.Hit
	err  error
}

func (m *mockHitSource) Read(_ io.Reader) ([]*domain.Hit, error) {
	return nil, m.err
}

func (m *mockHitSource) ReadFile(path string) ([]*domain.Hit, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hits[path], nil
}

// testReport builds a minimal classified report.
func testReport(query string, tally domain.CategoryTally) *domain.Report {
	return &domain.Report{
		RunID:     "run-1",
		QueryName: query,
		Old:       domain.NewPartition(nil),
		New:       domain.NewPartition(nil),
		Tally:     tally,
		Baseline:  time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}
