package auditor

import (
	"sort"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
)

// Diff partitions the literal pattern sets of robots.txt vs ai.txt per user
// agent. Two patterns are "shared" only when exactly equal as strings; this
// compares the declarations site operators actually wrote, not semantic
// path equivalence. The wildcard group participates like any other token.
func Diff(rob, ai *permset.PermissionSet) map[string]domain.DiffResult {
	agents := unionAgents(rob, ai)
	if len(agents) == 0 {
		return nil
	}

	out := make(map[string]domain.DiffResult, len(agents))
	for _, ua := range agents {
		allowR := rob.Patterns(ua, domain.RuleAllow)
		allowA := ai.Patterns(ua, domain.RuleAllow)
		disR := rob.Patterns(ua, domain.RuleDisallow)
		disA := ai.Patterns(ua, domain.RuleDisallow)

		d := domain.DiffResult{}
		d.AllowEqual, d.AllowOnlyRobots, d.AllowOnlyAI = partition(allowR, allowA)
		d.DisallowEqual, d.DisallowOnlyRobots, d.DisallowOnlyAI = partition(disR, disA)
		out[ua] = d
	}
	return out
}

// partition splits two pattern lists into sorted (shared, only-left,
// only-right) sets. The three outputs are disjoint and cover every input.
func partition(left, right []string) (both, onlyLeft, onlyRight []string) {
	l := toSet(left)
	r := toSet(right)
	for p := range l {
		if _, ok := r[p]; ok {
			both = append(both, p)
		} else {
			onlyLeft = append(onlyLeft, p)
		}
	}
	for p := range r {
		if _, ok := l[p]; !ok {
			onlyRight = append(onlyRight, p)
		}
	}
	sort.Strings(both)
	sort.Strings(onlyLeft)
	sort.Strings(onlyRight)
	return both, onlyLeft, onlyRight
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range in {
		out[s] = struct{}{}
	}
	return out
}

// unionAgents returns the deduplicated union of declared tokens of both
// sets, preserving robots-first declaration order.
func unionAgents(sets ...*permset.PermissionSet) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, ps := range sets {
		if ps == nil {
			continue
		}
		for _, ua := range ps.Agents() {
			if _, ok := seen[ua]; ok {
				continue
			}
			seen[ua] = struct{}{}
			out = append(out, ua)
		}
	}
	return out
}
