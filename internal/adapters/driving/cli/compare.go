package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driving"
	"github.com/blastwatch/blastdiff/internal/logger"
)

var (
	compareOldPath    string
	compareNewPath    string
	compareTopN       int
	compareSavePath   string
	compareLongLabels bool
	compareShowAll    bool
	compareExport     []string
	compareOutDir     string
	compareJSON       bool
	compareWatch      bool
	compareEmail      string
	compareAPIKey     string
	compareDatabase   string
	compareNoCache    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare an old and a new BLAST result",
	Long: `Compares two tabular BLAST results for the same queries and prints a
per-query tally of hit categories.

Both files must cover the same set of queries. Hits missing from the
new search are resolved against the sequence directory to decide
whether they are still live, replaced by a successor, or suppressed;
hits new to the search are dated against the old search's inferred
snapshot to separate genuinely new records from strange ones.

Examples:
  # Basic comparison
  blastdiff compare -o last_month.blast -n today.blast

  # Only tally the top 50 hits, show every category
  blastdiff compare -o old.blast -n new.blast --top 50 --all

  # Export the suppressed and strange hits alongside the tally
  blastdiff compare -o old.blast -n new.blast --export suppressed,strange

  # Re-run whenever either file changes
  blastdiff compare -o old.blast -n new.blast --watch`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareOldPath, "old", "o", "", "older tabular BLAST result (required)")
	compareCmd.Flags().StringVarP(&compareNewPath, "new", "n", "", "newer tabular BLAST result (required)")
	compareCmd.Flags().IntVar(&compareTopN, "top", 0, "tally only the first N hits per side (0 = all)")
	compareCmd.Flags().StringVar(&compareSavePath, "save", "", "also write the report to this file")
	compareCmd.Flags().BoolVar(&compareLongLabels, "long", false, "use descriptive category labels")
	compareCmd.Flags().BoolVar(&compareShowAll, "all", false, "show empty categories too")
	compareCmd.Flags().StringSliceVar(&compareExport, "export", nil, "categories to export as tabular files (e.g. suppressed,strange)")
	compareCmd.Flags().StringVar(&compareOutDir, "out-dir", ".", "directory for exported category files")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "output the report as JSON")
	compareCmd.Flags().BoolVar(&compareWatch, "watch", false, "re-run whenever either input file changes")
	compareCmd.Flags().StringVar(&compareEmail, "email", "", "contact email for directory lookups (overrides config)")
	compareCmd.Flags().StringVar(&compareAPIKey, "api-key", "", "directory API key (overrides config)")
	compareCmd.Flags().StringVar(&compareDatabase, "database", "", "directory database (overrides config)")
	compareCmd.Flags().BoolVar(&compareNoCache, "no-cache", false, "bypass the directory lookup cache")

	compareCmd.MarkFlagRequired("old")    //nolint:errcheck
	compareCmd.MarkFlagRequired("new")    //nolint:errcheck
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	service, cleanup, err := ensureCompareService(directoryOptions{
		email:    compareEmail,
		apiKey:   compareAPIKey,
		database: compareDatabase,
		noCache:  compareNoCache,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	if !compareWatch {
		return compareOnce(cmd, service)
	}
	return compareLoop(cmd, service)
}

// compareOnce runs one comparison and renders its reports.
func compareOnce(cmd *cobra.Command, service driving.CompareService) error {
	logger.Phase("Loading hit lists")
	oldHits, err := hitSource.ReadFile(compareOldPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", compareOldPath, err)
	}
	newHits, err := hitSource.ReadFile(compareNewPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", compareNewPath, err)
	}
	logger.Info("loaded %d old and %d new hits", len(oldHits), len(newHits))

	opts := domain.CompareOptions{TopN: compareTopN}
	reports, err := service.Run(cmd.Context(), oldHits, newHits, opts)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if compareJSON {
		if err := writeReportJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	} else {
		renderReports(cmd.OutOrStdout(), reports, renderOptions{
			LongLabels: compareLongLabels,
			ShowAll:    compareShowAll,
		})
	}

	if compareSavePath != "" {
		if err := saveReports(compareSavePath, reports); err != nil {
			return err
		}
		cmd.Printf("Report saved to %s\n", compareSavePath)
	}

	for _, report := range reports {
		if err := exportCategories(cmd, report, compareExport, compareOutDir); err != nil {
			return err
		}
	}
	return nil
}

// exportCategories writes the requested category buckets of one report
// as tabular files.
func exportCategories(cmd *cobra.Command, report *domain.Report, categories []string, outDir string) error {
	for _, name := range categories {
		hits, err := categoryHits(report, name)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			logger.Debug("export: %s/%s is empty, skipping", report.QueryName, name)
			continue
		}

		path, err := hitExporter.ExportCategory(outDir, report.QueryName, name, hits)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", name, err)
		}
		cmd.Printf("Wrote %d %s hits to %s\n", len(hits), name, path)
	}
	return nil
}

// categoryHits selects a report's hits by category name. Beyond the
// seven lifecycle categories, all_old and all_new select whole sides.
func categoryHits(report *domain.Report, name string) ([]*domain.Hit, error) {
	switch name {
	case "all_old":
		return report.Old.All, nil
	case "all_new":
		return report.New.All, nil
	}

	category := domain.HitStatus(name)
	for _, known := range domain.Categories() {
		if category == known {
			old := report.Old.Bucket(category)
			new_ := report.New.Bucket(category)
			return append(append([]*domain.Hit{}, old...), new_...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, name)
}

// saveReports writes the rendered report to a file, without adaptive
// suppression so saved reports are machine-comparable.
func saveReports(path string, reports []*domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	renderReports(f, reports, renderOptions{
		LongLabels: compareLongLabels,
		ShowAll:    true,
		Plain:      true,
	})
	return nil
}

// compareLoop re-runs the comparison whenever either input file
// changes.
func compareLoop(cmd *cobra.Command, service driving.CompareService) error {
	if err := compareOnce(cmd, service); err != nil {
		// Keep watching; the next save may fix the input.
		logger.Warn("comparison failed: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories: editors and downloads replace
	// files rather than writing them in place.
	watched := map[string]bool{
		filepath.Clean(compareOldPath): true,
		filepath.Clean(compareNewPath): true,
	}
	for dir := range map[string]bool{
		filepath.Dir(compareOldPath): true,
		filepath.Dir(compareNewPath): true,
	} {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	cmd.Println("Watching for changes. Press Ctrl-C to stop.")

	// Debounce bursts of events from a single save.
	var timer *time.Timer
	trigger := make(chan struct{}, 1)
	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)

		case <-trigger:
			cmd.Println()
			if err := compareOnce(cmd, service); err != nil {
				logger.Warn("comparison failed: %v", err)
			}
		}
	}
}
