package auditor

import (
	"sort"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
)

// Aggregator tallies explicit allow/disallow occurrences per user agent and
// cross-file conflict counts across the corpus. Counter addition is
// commutative, so per-worker partial aggregators merge identically in any
// order.
type Aggregator struct {
	counts map[string]*domain.AggregateCount
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{counts: make(map[string]*domain.AggregateCount)}
}

// Observe folds one domain's report into the tally. Occurrence counters
// record, per explicitly declared user agent (wildcard excluded), whether
// the domain declared any allow/disallow for it in each file; conflict
// counters record the domains where the detector found at least one
// disagreement for the agent.
func (a *Aggregator) Observe(rob, ai *permset.PermissionSet, conflicts []domain.ConflictRecord) {
	for _, ua := range unionAgents(rob, ai) {
		if ua == "*" {
			continue
		}
		c := a.count(ua)
		if len(rob.Patterns(ua, domain.RuleAllow)) > 0 {
			c.RobotsAllow++
		}
		if len(rob.Patterns(ua, domain.RuleDisallow)) > 0 {
			c.RobotsDisallow++
		}
		if len(ai.Patterns(ua, domain.RuleAllow)) > 0 {
			c.AIAllow++
		}
		if len(ai.Patterns(ua, domain.RuleDisallow)) > 0 {
			c.AIDisallow++
		}
		c.TotalRules += len(rob.DeclaredRules(ua)) + len(ai.DeclaredRules(ua))
	}

	seen := make(map[string]struct{})
	for _, rec := range conflicts {
		if _, dup := seen[rec.UserAgent]; dup {
			continue
		}
		seen[rec.UserAgent] = struct{}{}
		a.count(rec.UserAgent).Conflicts++
	}
}

// Merge folds another aggregator's partial counts into a.
func (a *Aggregator) Merge(o *Aggregator) {
	for ua, c := range o.counts {
		a.count(ua).Add(*c)
	}
}

// Sorted returns the tally ordered by descending conflict count, ties by
// descending total rule count, then user agent ascending. The ordering is
// deterministic so corpus reports are reproducible.
func (a *Aggregator) Sorted() []domain.AggregateCount {
	out := make([]domain.AggregateCount, 0, len(a.counts))
	for _, c := range a.counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Conflicts != out[j].Conflicts {
			return out[i].Conflicts > out[j].Conflicts
		}
		if out[i].TotalRules != out[j].TotalRules {
			return out[i].TotalRules > out[j].TotalRules
		}
		return out[i].UserAgent < out[j].UserAgent
	})
	return out
}

func (a *Aggregator) count(ua string) *domain.AggregateCount {
	c, ok := a.counts[ua]
	if !ok {
		c = &domain.AggregateCount{UserAgent: ua}
		a.counts[ua] = c
	}
	return c
}
