package auditor

import (
	"sort"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
)

// DetectConflicts cross-resolves robots.txt and ai.txt for every registry
// crawler a group in either file governs, and reports path-level verdict
// disagreement with line attribution.
//
// Probe paths are the distinct patterns declared for the crawler in either
// file, reduced to concrete paths (wildcards cut at their literal prefix,
// anchors dropped). A registry crawler no group governs on either side,
// including the wildcard fallback, produces no records: absence of
// declaration is not conflict.
func DetectConflicts(dom string, rob, ai *permset.PermissionSet, reg Registry) []domain.ConflictRecord {
	var out []domain.ConflictRecord
	for _, ua := range reg.Agents() {
		rulesR := rob.SelectRules(ua)
		rulesA := ai.SelectRules(ua)
		if rulesR == nil && rulesA == nil {
			continue
		}

		for _, path := range probePaths(rulesR, rulesA) {
			vr := domain.ResolvePath(rulesR, path)
			va := domain.ResolvePath(rulesA, path)
			if vr.Allowed == va.Allowed {
				continue
			}
			out = append(out, domain.ConflictRecord{
				Domain:        dom,
				UserAgent:     ua,
				Path:          path,
				RobotsVerdict: vr.Kind(),
				AIVerdict:     va.Kind(),
				RobotsLine:    vr.Line(),
				AILine:        va.Line(),
			})
		}
	}
	return out
}

// probePaths collects the deduplicated probe paths of both rule lists,
// sorted for deterministic report order.
func probePaths(lists ...[]domain.Rule) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, rules := range lists {
		for _, r := range rules {
			p := r.ProbePath()
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
