package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

var (
	exportOldPath  string
	exportNewPath  string
	exportTopN     int
	exportOutDir   string
	exportEmail    string
	exportAPIKey   string
	exportDatabase string
	exportNoCache  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <category>...",
	Short: "Export classified hits as tabular files",
	Long: `Runs a comparison and writes the selected categories back out in the
input's tabular format, one file per query and category, with the
category appended as a final column.

Categories: equal, similar, live, replaced, suppressed, new, strange.
The pseudo-categories all_old and all_new export a whole side.

Files are named <query>_<category>.blast after the sanitised query
name.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOldPath, "old", "o", "", "older tabular BLAST result (required)")
	exportCmd.Flags().StringVarP(&exportNewPath, "new", "n", "", "newer tabular BLAST result (required)")
	exportCmd.Flags().IntVar(&exportTopN, "top", 0, "tally only the first N hits per side (0 = all)")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", ".", "directory for exported files")
	exportCmd.Flags().StringVar(&exportEmail, "email", "", "contact email for directory lookups (overrides config)")
	exportCmd.Flags().StringVar(&exportAPIKey, "api-key", "", "directory API key (overrides config)")
	exportCmd.Flags().StringVar(&exportDatabase, "database", "", "directory database (overrides config)")
	exportCmd.Flags().BoolVar(&exportNoCache, "no-cache", false, "bypass the directory lookup cache")

	exportCmd.MarkFlagRequired("old") //nolint:errcheck
	exportCmd.MarkFlagRequired("new") //nolint:errcheck
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	// Fail on a bad category before spending directory lookups.
	for _, name := range args {
		if err := validateCategory(name); err != nil {
			return err
		}
	}

	service, cleanup, err := ensureCompareService(directoryOptions{
		email:    exportEmail,
		apiKey:   exportAPIKey,
		database: exportDatabase,
		noCache:  exportNoCache,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	oldHits, err := hitSource.ReadFile(exportOldPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", exportOldPath, err)
	}
	newHits, err := hitSource.ReadFile(exportNewPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", exportNewPath, err)
	}

	reports, err := service.Run(cmd.Context(), oldHits, newHits, domain.CompareOptions{TopN: exportTopN})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	for _, report := range reports {
		if err := exportCategories(cmd, report, args, exportOutDir); err != nil {
			return err
		}
	}
	return nil
}

func validateCategory(name string) error {
	if name == "all_old" || name == "all_new" {
		return nil
	}
	for _, known := range domain.Categories() {
		if domain.HitStatus(name) == known {
			return nil
		}
	}

	known := make([]string, 0, len(domain.Categories())+2)
	for _, category := range domain.Categories() {
		known = append(known, string(category))
	}
	known = append(known, "all_old", "all_new")
	return fmt.Errorf("%w: %q (expected one of %s)",
		domain.ErrUnknownCategory, name, strings.Join(known, ", "))
}
