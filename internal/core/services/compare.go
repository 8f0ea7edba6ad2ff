package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/blastwatch/blastdiff/internal/core/domain"
	"github.com/blastwatch/blastdiff/internal/core/ports/driven"
	"github.com/blastwatch/blastdiff/internal/core/ports/driving"
	"github.com/blastwatch/blastdiff/internal/logger"
)

// Ensure CompareService implements the interface.
var _ driving.CompareService = (*CompareService)(nil)

// CompareService reconciles two snapshots of hit lists.
type CompareService struct {
	matcher  *Matcher
	resolver *Resolver
	linker   *Linker
	agg      Aggregator
}

// NewCompareService creates the engine over an injected comparator and
// directory service.
func NewCompareService(cmp driven.HitComparator, dir driven.DirectoryService) *CompareService {
	return &CompareService{
		matcher:  NewMatcher(cmp),
		resolver: NewResolver(dir),
		linker:   NewLinker(cmp),
	}
}

// Run groups both inputs by query name and compares each query
// independently. Both sides must cover the same query set; a mismatch
// is a fatal precondition failure since comparison is only meaningful
// within one shared query.
func (s *CompareService) Run(ctx context.Context, oldHits, newHits []*domain.Hit, opts domain.CompareOptions) ([]*domain.Report, error) {
	oldByQuery, order := groupByQuery(oldHits)
	newByQuery, _ := groupByQuery(newHits)

	if err := checkQuerySets(oldByQuery, newByQuery); err != nil {
		return nil, err
	}

	reports := make([]*domain.Report, 0, len(order))
	for _, name := range order {
		report, err := s.CompareQuery(ctx, name, oldByQuery[name], newByQuery[name], opts)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", name, err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// CompareQuery reconciles one query's two hit lists:
// match, resolve old fates, link replacements, resolve new creation
// dates, classify recency, tally. Each phase consumes the previous
// phase's unmatched set, so the order is fixed.
func (s *CompareService) CompareQuery(ctx context.Context, queryName string, oldHits, newHits []*domain.Hit, opts domain.CompareOptions) (*domain.Report, error) {
	report := &domain.Report{
		RunID:     uuid.NewString(),
		QueryName: queryName,
	}

	logger.Phase("Matching: " + queryName)
	newPart, oldPart := s.matcher.Match(newHits, oldHits)
	report.Old, report.New = oldPart, newPart

	for _, h := range oldPart.Same {
		h.Status = domain.StatusEqual
	}
	for _, h := range newPart.Same {
		h.Status = domain.StatusEqual
	}
	for _, h := range oldPart.Similar {
		h.Status = domain.StatusSimilar
	}
	for _, h := range newPart.Similar {
		h.Status = domain.StatusSimilar
	}

	logger.Phase("Resolving old hits")
	oldRecords, unresolvedOld, err := s.resolver.Resolve(ctx, oldPart.Unknown)
	if err != nil {
		return nil, err
	}
	dropUnresolved(oldPart, unresolvedOld)

	pending := classifyOld(oldPart, oldRecords)

	logger.Phase("Linking replacements")
	s.linker.Link(pending, oldRecords, oldPart, newPart)

	logger.Phase("Resolving new hits")
	newRecords, unresolvedNew, err := s.resolver.Resolve(ctx, newPart.Unknown)
	if err != nil {
		return nil, err
	}
	dropUnresolved(newPart, unresolvedNew)

	report.Baseline = Baseline(oldRecords)
	if !report.Baseline.IsZero() {
		logger.Info("old search directory snapshot dated %s", report.Baseline.Format("2006/01/02"))
	}
	ClassifyRecency(newPart, newRecords, report.Baseline)

	report.Tally = s.agg.Tally(oldPart, newPart, opts.TopN)

	if !oldPart.Complete() || !newPart.Complete() {
		logger.Warn("partition incomplete for query %q: old %d/%d, new %d/%d",
			queryName, oldPart.TerminalCount(), len(oldPart.All),
			newPart.TerminalCount(), len(newPart.All))
	}

	return report, nil
}

// classifyOld distributes the old side's resolved unmatched hits:
// suppressed entries are terminal, live entries were lost at some point
// between the two searches, replaced entries stay pending for the
// linker. Drains the unknown bucket.
func classifyOld(oldPart *domain.Partition, records map[string]domain.DirectoryRecord) []*domain.Hit {
	var pending []*domain.Hit

	for _, h := range oldPart.Unknown {
		num, ok := h.CanonicalID()
		if !ok {
			oldPart.Unresolved = append(oldPart.Unresolved, h)
			continue
		}

		switch records[num].Status {
		case domain.RecordSuppressed:
			h.Status = domain.StatusSuppressed
			oldPart.Suppressed = append(oldPart.Suppressed, h)
		case domain.RecordReplaced:
			pending = append(pending, h)
		default:
			h.Status = domain.StatusLive
			oldPart.Lost = append(oldPart.Lost, h)
		}
	}

	oldPart.Unknown = nil
	return pending
}

// dropUnresolved moves hits the resolver could not classify from the
// unknown bucket to the unresolved bucket.
func dropUnresolved(p *domain.Partition, unresolved []*domain.Hit) {
	if len(unresolved) == 0 {
		return
	}

	skip := make(map[*domain.Hit]bool, len(unresolved))
	for _, h := range unresolved {
		skip[h] = true
	}

	kept := p.Unknown[:0]
	for _, h := range p.Unknown {
		if skip[h] {
			p.Unresolved = append(p.Unresolved, h)
			continue
		}
		kept = append(kept, h)
	}
	p.Unknown = kept
}

// groupByQuery splits hits by query name, preserving input order of
// both queries and hits.
func groupByQuery(hits []*domain.Hit) (map[string][]*domain.Hit, []string) {
	byQuery := make(map[string][]*domain.Hit)
	var order []string

	for _, h := range hits {
		if _, seen := byQuery[h.QueryName]; !seen {
			order = append(order, h.QueryName)
		}
		byQuery[h.QueryName] = append(byQuery[h.QueryName], h)
	}

	return byQuery, order
}

// checkQuerySets verifies both inputs cover the same query names.
func checkQuerySets(oldByQuery, newByQuery map[string][]*domain.Hit) error {
	var missing []string
	for name := range oldByQuery {
		if _, ok := newByQuery[name]; !ok {
			missing = append(missing, name+" (old only)")
		}
	}
	for name := range newByQuery {
		if _, ok := oldByQuery[name]; !ok {
			missing = append(missing, name+" (new only)")
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", domain.ErrQuerySetMismatch, strings.Join(missing, ", "))
	}
	return nil
}
