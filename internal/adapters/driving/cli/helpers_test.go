package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blastwatch/blastdiff/internal/adapters/driven/config/file"
	"github.com/blastwatch/blastdiff/internal/adapters/driven/hitfile"
	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// mockCompareService is a mock implementation of driving.CompareService.
type mockCompareService struct {
	reports []*domain.Report
	err     error
	lastOld []*domain.Hit
	lastNew []*domain.Hit
	opts    domain.CompareOptions
	runs    int
}

func (m *mockCompareService) Run(
	_ context.Context,
	oldHits, newHits []*domain.Hit,
	opts domain.CompareOptions,
) ([]*domain.Report, error) {
	m.runs++
	m.lastOld = oldHits
	m.lastNew = newHits
	m.opts = opts
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
	lastIDs []string
}

func (m *mockLookupService) Lookup(_ context.Context, ids []string) (map[string]domain.DirectoryRecord, error) {
	m.lastIDs = ids
	return m.records, m.err
}

// setupTestServices injects mock services and a temp config store, and
// returns a cleanup that restores the package state.
func setupTestServices(t *testing.T, compare *mockCompareService, lookup *mockLookupService) func() {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	compareService = compare
	lookupService = lookup
	hitSource = hitfile.NewReader()
	hitExporter = hitfile.NewWriter()
	configStore = store

	return func() {
		compareService = nil
		lookupService = nil
		hitSource = nil
		hitExporter = nil
		configStore = nil
		resetFlagValues()
	}
}

// resetFlagValues restores package flag variables to their defaults.
// Cobra keeps parsed values between executions, so tests that set a
// flag would otherwise leak it into the next test.
func resetFlagValues() {
	verbose = false

	compareOldPath, compareNewPath = "", ""
	compareTopN = 0
	compareSavePath = ""
	compareLongLabels, compareShowAll = false, false
	compareExport = nil
	compareOutDir = "."
	compareJSON, compareWatch = false, false
	compareEmail, compareAPIKey, compareDatabase = "", "", ""
	compareNoCache = false

	lookupJSON = false
	lookupEmail, lookupAPIKey, lookupDatabase = "", "", ""
	lookupNoCache = false

	exportOldPath, exportNewPath = "", ""
	exportTopN = 0
	exportOutDir = "."
	exportEmail, exportAPIKey, exportDatabase = "", "", ""
	exportNoCache = false

	browseOldPath, browseNewPath = "", ""
	browseTopN = 0
	browseEmail, browseAPIKey, browseDatabase = "", "", ""
	browseNoCache = false
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

const sampleLine = "Q1\tgi|100|ref|NC_000001.11|\t99.50\t1200\t4\t1\t1\t1200\t5000\t6199\t1e-50\t2100\tgi|100|ref|NC_000001.11|"

// writeSampleFile writes a one-hit tabular file and returns its path.
func writeSampleFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(sampleLine+"\n"), 0600))
	return path
}

// classifiedReport builds a report whose buckets and tally agree.
func classifiedReport(query string) *domain.Report {
	equal := &domain.Hit{
		QueryName: query,
		IDs:       []domain.SeqID{{DB: domain.CanonicalDB, Num: "100"}},
		Fields:    []string{query, "gi|100|", "99.50", "1200", "4", "1", "1", "1200", "5000", "6199", "1e-50", "2100", "gi|100|"},
		Status:    domain.StatusEqual,
	}
	suppressed := &domain.Hit{
		QueryName: query,
		IDs:       []domain.SeqID{{DB: domain.CanonicalDB, Num: "200"}},
		Fields:    []string{query, "gi|200|", "97.00", "800", "10", "2", "1", "800", "100", "899", "1e-30", "900", "gi|200|"},
		Status:    domain.StatusSuppressed,
	}

	old := domain.NewPartition([]*domain.Hit{equal, suppressed})
	old.Unknown = nil
	old.Same = []*domain.Hit{equal}
	old.Suppressed = []*domain.Hit{suppressed}

	new_ := domain.NewPartition([]*domain.Hit{equal})
	new_.Unknown = nil
	new_.Same = []*domain.Hit{equal}

	var tally domain.CategoryTally
	tally.Add(domain.StatusEqual)
	tally.Add(domain.StatusSuppressed)

	return &domain.Report{
		RunID:     "run-1",
		QueryName: query,
		Old:       old,
		New:       new_,
		Tally:     tally,
		Baseline:  time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}
