// Package auditor runs the per-domain permission audit pipeline: parse the
// declaration files, resolve rule sets, and derive the diff, conflict,
// experimental, link, and typo products, merged into corpus aggregates.
package auditor

import (
	"bytes"
	"context"
	"sync"

	"github.com/crawlcheck/crawlcheck/internal/audit/common/log"
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/corpus"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/dirparser"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

const (
	defaultWorkers    = 4
	defaultTypoCutoff = 0.6
)

// Options configures an Auditor.
type Options struct {
	Corpus   Corpus
	Registry Registry
	Logger   log.Logger

	// Workers bounds the per-domain worker pool; defaults to 4.
	Workers int

	// TypoCutoff is the minimum similarity for a typo suggestion; defaults to 0.6.
	TypoCutoff float64

	// ExperimentalDirectives overrides the scanned directive names.
	ExperimentalDirectives []string
}

// Auditor coordinates the corpus run. Domains are fully independent, so the
// pipeline fans out over a bounded worker pool; the only synchronization
// point is the final merge of per-worker aggregate tallies.
type Auditor struct {
	corpus     Corpus
	registry   Registry
	logger     log.Logger
	workers    int
	typoCutoff float64
	directives []string
}

// New constructs an Auditor, applying defaults for unset options.
func New(opts Options) *Auditor {
	a := &Auditor{
		corpus:     opts.Corpus,
		registry:   opts.Registry,
		logger:     opts.Logger,
		workers:    opts.Workers,
		typoCutoff: opts.TypoCutoff,
		directives: opts.ExperimentalDirectives,
	}
	if a.logger == nil {
		a.logger = log.GetLogger()
	}
	if a.workers <= 0 {
		a.workers = defaultWorkers
	}
	if a.typoCutoff <= 0 {
		a.typoCutoff = defaultTypoCutoff
	}
	if len(a.directives) == 0 {
		a.directives = dirparser.DefaultExperimentalDirectives
	}
	return a
}

// Run audits every qualifying domain in the presence list and returns the
// collected corpus result. Cancelling the context stops scheduling new
// domains; reports of already-completed domains are kept. Each domain's
// report is atomic.
func (a *Auditor) Run(ctx context.Context, presences []corpus.Presence) (*RunResult, error) {
	jobs := make(chan corpus.Presence)
	reports := make(chan DomainReport)

	aggs := make([]*Aggregator, a.workers)
	var wg sync.WaitGroup
	for i := 0; i < a.workers; i++ {
		agg := NewAggregator()
		aggs[i] = agg
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				report, ok := a.processDomain(p, agg)
				if !ok {
					continue
				}
				select {
				case reports <- report:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, p := range presences {
			select {
			case jobs <- p:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(reports)
	}()

	result := &RunResult{
		RuleMap: make(rulemap.Map),
		Diffs:   make(map[string]map[string]domain.DiffResult),
	}
	qualifying := 0
	for _, p := range presences {
		if p.HasAnyRuleFile() {
			qualifying++
		}
	}
	result.Summary.DomainsSkipped = len(presences) - qualifying

	for report := range reports {
		a.collect(result, report)
	}

	merged := NewAggregator()
	for _, agg := range aggs {
		merged.Merge(agg)
	}
	result.Aggregates = merged.Sorted()

	a.logger.Info(map[string]any{
		"processed":  result.Summary.DomainsProcessed,
		"skipped":    result.Summary.DomainsSkipped,
		"unreadable": result.Summary.UnreadableFiles,
		"conflicts":  result.Summary.ConflictRecords,
	}, "audit run complete")
	return result, ctx.Err()
}

// collect folds one atomic domain report into the run result.
func (a *Auditor) collect(result *RunResult, report DomainReport) {
	result.Summary.DomainsProcessed++
	result.Summary.UnreadableFiles += report.UnreadableSources
	result.Summary.SkippedLinks += report.SkippedLinks
	result.Summary.ConflictRecords += len(report.Conflicts)
	result.Summary.ExperimentalLines += len(report.Experimental)

	if len(report.Rules) > 0 {
		result.RuleMap[report.Domain] = report.Rules
		result.Summary.DomainsWithRules++
	}
	if len(report.Diffs) > 0 {
		result.Diffs[report.Domain] = report.Diffs
	}
	result.Conflicts = append(result.Conflicts, report.Conflicts...)
	result.Experiment = append(result.Experiment, report.Experimental...)
	result.Links = append(result.Links, report.Links...)
	result.Typos = append(result.Typos, report.Typos...)
}

// processDomain runs the full pipeline for one domain. Returns ok=false for
// domains the presence CSV disqualifies (no rule file at all).
func (a *Auditor) processDomain(p corpus.Presence, agg *Aggregator) (DomainReport, bool) {
	if !p.HasAnyRuleFile() {
		return DomainReport{}, false
	}

	report := DomainReport{Domain: p.Domain}

	rob := a.loadRules(p, domain.SourceRobots, &report)
	ai := a.loadRules(p, domain.SourceAI, &report)

	report.Rules = rulemap.FromPermissionSets(rob, ai)

	if p.HasRuleFiles() {
		report.Diffs = Diff(rob, ai)
		report.Conflicts = DetectConflicts(p.Domain, rob, ai, a.registry)
		report.Typos = DetectTypos(p.Domain, rob, ai, a.registry, a.typoCutoff)
		agg.Observe(rob, ai, report.Conflicts)
	}

	if p.Has(domain.SourceLLMS) {
		a.checkLLMS(p, rob, ai, &report)
	}

	return report, true
}

// loadRules reads and parses one source file into a permission set. A
// missing file is an empty set (implicit allow-all); a read failure marks
// the source unreadable and degrades to the same empty set, isolating the
// failure to this domain and source.
func (a *Auditor) loadRules(p corpus.Presence, src domain.Source, report *DomainReport) *permset.PermissionSet {
	if !p.Has(src) {
		return permset.Empty(p.Domain, src)
	}
	text, found, err := a.corpus.ReadSource(p.Domain, src)
	if err != nil {
		a.logger.Warn(map[string]any{"domain": p.Domain, "source": src.String(), "error": err.Error()}, "source unreadable")
		report.UnreadableSources++
		return permset.Empty(p.Domain, src)
	}
	if !found {
		return permset.Empty(p.Domain, src)
	}

	groups, err := dirparser.Parse(bytes.NewReader(text), src, a.logger)
	if err != nil {
		a.logger.Warn(map[string]any{"domain": p.Domain, "source": src.String(), "error": err.Error()}, "parse failed")
		report.UnreadableSources++
		return permset.Empty(p.Domain, src)
	}

	exp, err := dirparser.ScanExperimental(bytes.NewReader(text), p.Domain, src, a.directives)
	if err == nil {
		report.Experimental = append(report.Experimental, exp...)
	}

	return permset.New(p.Domain, src, groups)
}

// checkLLMS reads llms.txt and flags links into blocked paths.
func (a *Auditor) checkLLMS(p corpus.Presence, rob, ai *permset.PermissionSet, report *DomainReport) {
	text, found, err := a.corpus.ReadSource(p.Domain, domain.SourceLLMS)
	if err != nil {
		a.logger.Warn(map[string]any{"domain": p.Domain, "source": "llms", "error": err.Error()}, "source unreadable")
		report.UnreadableSources++
		return
	}
	if !found {
		return
	}
	links, skipped, err := CheckLinks(p.Domain, text, rob, ai, a.registry, report.Experimental)
	if err != nil {
		a.logger.Warn(map[string]any{"domain": p.Domain, "source": "llms", "error": err.Error()}, "link scan failed")
		report.UnreadableSources++
		return
	}
	report.Links = links
	report.SkippedLinks = skipped
}
