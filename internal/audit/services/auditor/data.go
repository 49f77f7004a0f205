package auditor

import (
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

// DomainReport is the atomic result of one domain's pipeline. A report is
// either emitted whole or not at all; no partial domain output exists.
type DomainReport struct {
	Domain string

	// Rules is the domain's rule-map entry (empty when no rule file parsed).
	Rules rulemap.DomainRules

	// Diffs partitions pattern sets per user agent (both rule files present).
	Diffs map[string]domain.DiffResult

	Conflicts    []domain.ConflictRecord
	Experimental []domain.ExperimentalDirective
	Links        []domain.LLMSLinkRecord
	Typos        []domain.TypoSuggestion

	// UnreadableSources counts files that existed but could not be read;
	// each is excluded from this domain's computation for that source only.
	UnreadableSources int

	// SkippedLinks counts llms.txt link targets that were off-site or
	// unparseable, never reported as conflicts.
	SkippedLinks int
}

// RunSummary is the end-of-run audit accounting.
type RunSummary struct {
	DomainsProcessed  int
	DomainsSkipped    int // no qualifying files per the presence CSV
	UnreadableFiles   int
	SkippedLinks      int
	ConflictRecords   int
	DomainsWithRules  int
	ExperimentalLines int
}

// RunResult is the collected output of a corpus run.
type RunResult struct {
	RuleMap    rulemap.Map
	Diffs      map[string]map[string]domain.DiffResult // domain -> ua -> diff
	Conflicts  []domain.ConflictRecord
	Experiment []domain.ExperimentalDirective
	Links      []domain.LLMSLinkRecord
	Typos      []domain.TypoSuggestion
	Aggregates []domain.AggregateCount
	Summary    RunSummary
}
