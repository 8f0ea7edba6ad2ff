package entrez

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// dateLayout is the creation date format Entrez document summaries use.
const dateLayout = "2006/01/02"

// summaryEnvelope is the ESummary JSON response shell.
type summaryEnvelope struct {
	Error  string          `json:"error"`
	Result json.RawMessage `json:"result"`
}

// docSummary is one per-identifier document summary. Only the lifecycle
// fields matter here; everything else in the docsum is ignored.
type docSummary struct {
	UID        string `json:"uid"`
	Status     string `json:"status"`
	ReplacedBy string `json:"replacedby"`
	CreateDate string `json:"createdate"`
	Error      string `json:"error"`
}

// parseSummaries decodes an ESummary JSON body into directory records
// keyed by requested identifier.
func parseSummaries(body []byte) (map[string]domain.DirectoryRecord, error) {
	var envelope summaryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("entrez: decoding summary response: %w", err)
	}
	if envelope.Error != "" {
		return nil, fmt.Errorf("entrez: %s", envelope.Error)
	}
	if len(envelope.Result) == 0 {
		return nil, fmt.Errorf("entrez: summary response without result")
	}

	var result struct {
		UIDs []string `json:"uids"`
	}
	if err := json.Unmarshal(envelope.Result, &result); err != nil {
		return nil, fmt.Errorf("entrez: decoding uid list: %w", err)
	}

	var sums map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Result, &sums); err != nil {
		return nil, fmt.Errorf("entrez: decoding summaries: %w", err)
	}

	records := make(map[string]domain.DirectoryRecord, len(result.UIDs))
	for _, uid := range result.UIDs {
		raw, ok := sums[uid]
		if !ok {
			continue
		}

		var sum docSummary
		if err := json.Unmarshal(raw, &sum); err != nil {
			return nil, fmt.Errorf("entrez: decoding summary for %s: %w", uid, err)
		}
		if sum.Error != "" {
			// The directory knows nothing about this identifier; leave
			// it out and let the resolver treat the gap as a failure.
			logger.Warn("entrez: no summary for %s: %s", uid, sum.Error)
			continue
		}

		rec, err := sum.toRecord()
		if err != nil {
			return nil, err
		}
		records[uid] = rec
	}

	return records, nil
}

func (s docSummary) toRecord() (domain.DirectoryRecord, error) {
	rec := domain.DirectoryRecord{ReplacedBy: s.ReplacedBy}

	switch strings.ToLower(s.Status) {
	case "live":
		rec.Status = domain.RecordAlive
	case "replaced":
		rec.Status = domain.RecordReplaced
	case "suppressed", "dead", "withdrawn":
		rec.Status = domain.RecordSuppressed
	default:
		return rec, fmt.Errorf("%w: %q for %s", ErrUnknownStatus, s.Status, s.UID)
	}

	if s.CreateDate != "" {
		date := s.CreateDate
		if len(date) > len(dateLayout) {
			date = date[:len(dateLayout)]
		}
		created, err := time.Parse(dateLayout, date)
		if err != nil {
			return rec, fmt.Errorf("entrez: bad creation date %q for %s: %w", s.CreateDate, s.UID, err)
		}
		rec.Created = created
	}

	return rec, nil
}
