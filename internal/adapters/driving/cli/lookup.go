package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

var (
	lookupJSON     bool
	lookupEmail    string
	lookupAPIKey   string
	lookupDatabase string
	lookupNoCache  bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <gi>...",
	Short: "Look up directory status for identifiers",
	Long: `Resolves gi numbers against the sequence directory and prints each
record's lifecycle status, replacement pointer, and creation date.

Useful for spot-checking why a comparison classified a hit the way it
did.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output records as JSON")
	lookupCmd.Flags().StringVar(&lookupEmail, "email", "", "contact email for directory lookups (overrides config)")
	lookupCmd.Flags().StringVar(&lookupAPIKey, "api-key", "", "directory API key (overrides config)")
	lookupCmd.Flags().StringVar(&lookupDatabase, "database", "", "directory database (overrides config)")
	lookupCmd.Flags().BoolVar(&lookupNoCache, "no-cache", false, "bypass the directory lookup cache")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	service, cleanup, err := ensureLookupService(directoryOptions{
		email:    lookupEmail,
		apiKey:   lookupAPIKey,
		database: lookupDatabase,
		noCache:  lookupNoCache,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := service.Lookup(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	if lookupJSON {
		return writeLookupJSON(cmd, args, records)
	}

	width := terminalWidth()
	for _, id := range args {
		rec, ok := records[id]
		if !ok {
			cmd.Println(truncate(fmt.Sprintf("%-12s (no directory entry)", id), width))
			continue
		}

		line := fmt.Sprintf("%-12s %-10s", id, rec.Status)
		if rec.ReplacedBy != "" {
			line += fmt.Sprintf("  replaced by %s", rec.ReplacedBy)
		}
		if !rec.Created.IsZero() {
			line += fmt.Sprintf("  created %s", rec.Created.Format("2006-01-02"))
		}
		cmd.Println(truncate(line, width))
	}
	return nil
}

type lookupRecordJSON struct {
	ID         string `json:"id"`
	Status     string `json:"status,omitempty"`
	ReplacedBy string `json:"replaced_by,omitempty"`
	Created    string `json:"created,omitempty"`
	Found      bool   `json:"found"`
}

func writeLookupJSON(cmd *cobra.Command, ids []string, records map[string]domain.DirectoryRecord) error {
	sorted := append([]string{}, ids...)
	sort.Strings(sorted)

	out := make([]lookupRecordJSON, 0, len(sorted))
	for _, id := range sorted {
		rec, ok := records[id]
		entry := lookupRecordJSON{ID: id, Found: ok}
		if ok {
			entry.Status = string(rec.Status)
			entry.ReplacedBy = rec.ReplacedBy
			if !rec.Created.IsZero() {
				entry.Created = rec.Created.Format("2006-01-02")
			}
		}
		out = append(out, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
