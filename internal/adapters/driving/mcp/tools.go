package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/blastwatch/blastdiff/internal/core/domain"
)

// CompareInput is the input schema for the compare_blast tool.
type CompareInput struct {
	OldPath string `json:"old_path" jsonschema:"path to the older tabular BLAST result file"`
	NewPath string `json:"new_path" jsonschema:"path to the newer tabular BLAST result file"`
	TopN    int    `json:"top_n,omitempty" jsonschema:"tally only the first N hits per side (0 = all)"`
}

// CompareOutput is the output schema for the compare_blast tool.
type CompareOutput struct {
	Reports []ReportOutput `json:"reports"`
}

// ReportOutput summarises one query's comparison.
type ReportOutput struct {
	Query      string         `json:"query"`
	Baseline   string         `json:"baseline,omitempty"`
	Tally      map[string]int `json:"tally"`
	Total      int            `json:"total"`
	Unresolved int            `json:"unresolved"`
}

// LookupInput is the input schema for the lookup_status tool.
type LookupInput struct {
	IDs []string `json:"ids" jsonschema:"gi numbers to resolve against the sequence directory"`
}

// LookupOutput is the output schema for the lookup_status tool.
type LookupOutput struct {
	Records []RecordOutput `json:"records"`
}

// RecordOutput is one resolved directory record.
type RecordOutput struct {
	ID         string `json:"id"`
	Found      bool   `json:"found"`
	Status     string `json:"status,omitempty"`
	ReplacedBy string `json:"replaced_by,omitempty"`
	Created    string `json:"created,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compare_blast",
		Description: "Compare an old and a new tabular BLAST result and tally hit lifecycle categories per query",
	}, s.handleCompare)

	if s.ports.Lookup != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "lookup_status",
			Description: "Resolve gi numbers against the sequence directory and report their lifecycle status",
		}, s.handleLookup)
	}
}

// handleCompare handles the compare_blast tool invocation.
func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	oldHits, err := s.ports.Hits.ReadFile(input.OldPath)
	if err != nil {
		return nil, CompareOutput{}, err
	}
	newHits, err := s.ports.Hits.ReadFile(input.NewPath)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	opts := domain.CompareOptions{TopN: input.TopN}
	reports, err := s.ports.Compare.Run(ctx, oldHits, newHits, opts)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	output := CompareOutput{Reports: make([]ReportOutput, len(reports))}
	for i, report := range reports {
		tally := make(map[string]int, len(domain.Categories()))
		for _, category := range domain.Categories() {
			tally[string(category)] = report.Tally.Count(category)
		}

		baseline := ""
		if !report.Baseline.IsZero() {
			baseline = report.Baseline.Format("2006-01-02")
		}

		output.Reports[i] = ReportOutput{
			Query:      report.QueryName,
			Baseline:   baseline,
			Tally:      tally,
			Total:      report.Tally.Total(),
			Unresolved: len(report.Unresolved()),
		}
	}

	return nil, output, nil
}

// handleLookup handles the lookup_status tool invocation.
func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	records, err := s.ports.Lookup.Lookup(ctx, input.IDs)
	if err != nil {
		return nil, LookupOutput{}, err
	}

	output := LookupOutput{Records: make([]RecordOutput, 0, len(input.IDs))}
	for _, id := range input.IDs {
		rec, ok := records[id]
		entry := RecordOutput{ID: id, Found: ok}
		if ok {
			entry.Status = string(rec.Status)
			entry.ReplacedBy = rec.ReplacedBy
			if !rec.Created.IsZero() {
				entry.Created = rec.Created.Format("2006-01-02")
			}
		}
		output.Records = append(output.Records, entry)
	}

	return nil, output, nil
}
