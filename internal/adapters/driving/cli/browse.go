package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/blastwatch/blastdiff/internal/adapters/driving/tui"
	"github.com/blastwatch/blastdiff/internal/core/domain"
)

var (
	browseOldPath  string
	browseNewPath  string
	browseTopN     int
	browseEmail    string
	browseAPIKey   string
	browseDatabase string
	browseNoCache  bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a comparison interactively",
	Long: `Runs a comparison and opens an interactive terminal browser over the
classified hits, grouped by query and category.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Open category
  Esc      - Back / Quit
  q        - Quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseOldPath, "old", "o", "", "older tabular BLAST result (required)")
	browseCmd.Flags().StringVarP(&browseNewPath, "new", "n", "", "newer tabular BLAST result (required)")
	browseCmd.Flags().IntVar(&browseTopN, "top", 0, "tally only the first N hits per side (0 = all)")
	browseCmd.Flags().StringVar(&browseEmail, "email", "", "contact email for directory lookups (overrides config)")
	browseCmd.Flags().StringVar(&browseAPIKey, "api-key", "", "directory API key (overrides config)")
	browseCmd.Flags().StringVar(&browseDatabase, "database", "", "directory database (overrides config)")
	browseCmd.Flags().BoolVar(&browseNoCache, "no-cache", false, "bypass the directory lookup cache")

	browseCmd.MarkFlagRequired("old") //nolint:errcheck
	browseCmd.MarkFlagRequired("new") //nolint:errcheck
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps stack traces visible outside the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in browser: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	service, cleanup, err := ensureCompareService(directoryOptions{
		email:    browseEmail,
		apiKey:   browseAPIKey,
		database: browseDatabase,
		noCache:  browseNoCache,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	oldHits, err := hitSource.ReadFile(browseOldPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", browseOldPath, err)
	}
	newHits, err := hitSource.ReadFile(browseNewPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", browseNewPath, err)
	}

	reports, err := service.Run(cmd.Context(), oldHits, newHits, domain.CompareOptions{TopN: browseTopN})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	p := tea.NewProgram(tui.NewModel(reports), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}
