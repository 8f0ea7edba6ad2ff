package services

import (
	"time"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// Baseline returns the latest creation date among the resolved old-side
// records. It approximates the freshness of the directory snapshot the
// old search ran against. Zero when nothing was resolved.
func Baseline(records map[string]domain.DirectoryRecord) time.Time {
	var baseline time.Time
	for _, rec := range records {
		if rec.Created.After(baseline) {
			baseline = rec.Created
		}
	}
	return baseline
}

// ClassifyRecency finalises the new side's unmatched hits.
//
// A hit created strictly before the baseline should already have existed
// in the old search's directory snapshot yet had no counterpart — a
// directory or search anomaly worth surfacing, classified strange. A
// creation date equal to or after the baseline classifies new. Without a
// baseline every remaining hit is new.
func ClassifyRecency(newPart *domain.Partition, records map[string]domain.DirectoryRecord, baseline time.Time) {
	for _, nh := range newPart.Unknown {
		num, ok := nh.CanonicalID()
		if !ok {
			// Unresolvable hits were removed before this phase.
			newPart.Unresolved = append(newPart.Unresolved, nh)
			continue
		}

		created := records[num].Created
		if !baseline.IsZero() && created.Before(baseline) {
			logger.Debug("hit %s %s created %s, before baseline %s: strange",
				domain.CanonicalDB, num, created.Format("2006/01/02"), baseline.Format("2006/01/02"))
			nh.Status = domain.StatusStrange
			newPart.Strange = append(newPart.Strange, nh)
			continue
		}

		nh.Status = domain.StatusNew
		newPart.New = append(newPart.New, nh)
	}

	newPart.Unknown = nil
}
