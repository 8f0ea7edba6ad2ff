package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// longLabels describe each category for readers who don't live in this
// tool.
var longLabels = map[domain.HitStatus]string{
	domain.StatusEqual:      "identical in both searches",
	domain.StatusSimilar:    "same record, drifted alignment",
	domain.StatusLive:       "gone from the new search but still live",
	domain.StatusReplaced:   "superseded by a newer record",
	domain.StatusSuppressed: "removed from the database",
	domain.StatusNew:        "new since the old search",
	domain.StatusStrange:    "new to the search yet older than it",
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	categoryStyle = map[domain.HitStatus]lipgloss.Style{
		domain.StatusEqual:      lipgloss.NewStyle(),
		domain.StatusSimilar:    lipgloss.NewStyle(),
		domain.StatusLive:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		domain.StatusReplaced:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		domain.StatusSuppressed: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		domain.StatusNew:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		domain.StatusStrange:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)

// renderOptions controls how reports print.
type renderOptions struct {
	// LongLabels switches to descriptive category labels.
	LongLabels bool

	// ShowAll keeps empty categories in the table. Display-time only:
	// the tally itself always carries every category.
	ShowAll bool

	// Plain disables styling, for file output.
	Plain bool
}

// renderReports prints one tally table per query.
func renderReports(w io.Writer, reports []*domain.Report, opts renderOptions) {
	style := func(s lipgloss.Style, text string) string {
		if opts.Plain {
			return text
		}
		return s.Render(text)
	}

	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}

		header := fmt.Sprintf("Query %s: %d old, %d new hits",
			report.QueryName, len(report.Old.All), len(report.New.All))
		fmt.Fprintln(w, style(titleStyle, header))
		if !report.Baseline.IsZero() {
			fmt.Fprintln(w, style(mutedStyle,
				fmt.Sprintf("  old search dated %s", report.Baseline.Format("2006-01-02"))))
		}

		for _, category := range domain.Categories() {
			count := report.Tally.Count(category)
			if count == 0 && !opts.ShowAll {
				continue
			}

			label := string(category)
			if opts.LongLabels {
				label = fmt.Sprintf("%-10s %s", category, longLabels[category])
			}

			line := fmt.Sprintf("  %6d  %s", count, label)
			if count == 0 {
				fmt.Fprintln(w, style(mutedStyle, line))
				continue
			}
			fmt.Fprintln(w, style(categoryStyle[category], line))
		}

		fmt.Fprintf(w, "  %6d  total\n", report.Tally.Total())

		if unresolved := report.Unresolved(); len(unresolved) > 0 {
			fmt.Fprintln(w, style(mutedStyle,
				fmt.Sprintf("  %d hits had no gi identifier and were not classified", len(unresolved))))
		}
	}
}

// terminalWidth reports the stdout width, or a sane default when not a
// terminal.
func terminalWidth() int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}

// reportJSON is the machine-readable report shape.
type reportJSON struct {
	RunID      string         `json:"run_id"`
	Query      string         `json:"query"`
	Baseline   string         `json:"baseline,omitempty"`
	Tally      map[string]int `json:"tally"`
	Unresolved int            `json:"unresolved"`
}

// writeReportJSON writes reports as an indented JSON array.
func writeReportJSON(w io.Writer, reports []*domain.Report) error {
	out := make([]reportJSON, len(reports))
	for i, report := range reports {
		tally := make(map[string]int, len(domain.Categories()))
		for _, category := range domain.Categories() {
			tally[string(category)] = report.Tally.Count(category)
		}

		baseline := ""
		if !report.Baseline.IsZero() {
			baseline = report.Baseline.Format("2006-01-02")
		}

		out[i] = reportJSON{
			RunID:      report.RunID,
			Query:      report.QueryName,
			Baseline:   baseline,
			Tally:      tally,
			Unresolved: len(report.Unresolved()),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// truncate shortens text to fit the available width.
func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return strings.TrimSpace(s[:width-3]) + "..."
}
