package services

import (
	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// Linker resolves old hits whose directory entry points at a
// replacement.
type Linker struct {
	cmp driven.HitComparator
}

// NewLinker creates a linker over the given comparator.
func NewLinker(cmp driven.HitComparator) *Linker {
	return &Linker{cmp: cmp}
}

// Link processes the pending replaced group.
//
// For each old hit, the directory-declared replacement identifier is
// searched among the new side's unmatched hits, skipping hits a previous
// replacement already consumed. A candidate only confirms when its
// alignment attributes match identity-agnostically; identifiers differ
// between an entry and its successor by definition.
//
// A pointer that finds no confirmable candidate is stale, not broken:
// directory metadata moves independently of point-in-time searches. The
// old hit reclassifies as live (lost), and the run continues.
func (l *Linker) Link(pending []*domain.Hit, records map[string]domain.DirectoryRecord, oldPart, newPart *domain.Partition) {
	for _, oh := range pending {
		num, ok := oh.CanonicalID()
		if !ok {
			// Pending hits were resolved, so this cannot happen; keep
			// the hit visible rather than losing it.
			oldPart.Unresolved = append(oldPart.Unresolved, oh)
			continue
		}

		replacedBy := records[num].ReplacedBy
		confirmed := false

		for i, cand := range newPart.Unknown {
			if !cand.HasID(replacedBy) {
				continue
			}
			if !l.cmp.CompareAttributes(oh, cand).Matched() {
				continue
			}

			newPart.Unknown = append(newPart.Unknown[:i:i], newPart.Unknown[i+1:]...)
			cand.Status = domain.StatusReplaced
			oh.Status = domain.StatusReplaced
			newPart.Replacement = append(newPart.Replacement, cand)
			oldPart.Replacement = append(oldPart.Replacement, oh)
			confirmed = true
			logger.Debug("replacement confirmed: %s %s -> %s", domain.CanonicalDB, num, replacedBy)
			break
		}

		if !confirmed {
			logger.Debug("stale replacement pointer %s %s -> %s, reclassifying as live",
				domain.CanonicalDB, num, replacedBy)
			oh.Status = domain.StatusLive
			oldPart.Lost = append(oldPart.Lost, oh)
		}
	}
}
