// Package permset aggregates parsed directive groups into per-source
// permission sets and answers path-resolution queries against them.
package permset

import (
	"strings"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
)

// PermissionSet holds the ordered rule lists of one (domain, source) pair,
// keyed by declared user-agent token. Immutable after construction. Rule
// order inside a token's list is declaration order; precedence at resolution
// time depends on pattern specificity, not list order, but line attribution
// requires the original order to survive.
type PermissionSet struct {
	domain string
	source domain.Source
	rules  map[string][]domain.Rule
	order  []string // declared tokens, first-seen order
}

// New builds a PermissionSet from parser output. Later groups declaring an
// already-seen token append to its rule list rather than replacing it.
func New(dom string, source domain.Source, groups []domain.UserAgentGroup) *PermissionSet {
	ps := &PermissionSet{
		domain: dom,
		source: source,
		rules:  make(map[string][]domain.Rule),
	}
	for _, g := range groups {
		for _, agent := range g.Agents {
			if _, seen := ps.rules[agent]; !seen {
				ps.rules[agent] = nil
				ps.order = append(ps.order, agent)
			}
			ps.rules[agent] = append(ps.rules[agent], g.RulesFor(agent)...)
		}
	}
	return ps
}

// Empty returns a PermissionSet with no declared groups (implicit allow-all),
// used for missing or unreadable files.
func Empty(dom string, source domain.Source) *PermissionSet {
	return New(dom, source, nil)
}

// Domain returns the domain this set was built for.
func (ps *PermissionSet) Domain() string { return ps.domain }

// Source returns the file this set was built from.
func (ps *PermissionSet) Source() domain.Source { return ps.source }

// Agents returns the declared user-agent tokens in first-seen order,
// including the wildcard when declared.
func (ps *PermissionSet) Agents() []string { return ps.order }

// HasAgent reports whether the exact token was declared (case-insensitive).
func (ps *PermissionSet) HasAgent(token string) bool {
	for declared := range ps.rules {
		if strings.EqualFold(declared, token) {
			return true
		}
	}
	return false
}

// DeclaredRules returns the rule list of one exact declared token
// (case-insensitive), without wildcard fallback. Used by the diff and
// conflict stages that compare literal declarations.
func (ps *PermissionSet) DeclaredRules(token string) []domain.Rule {
	for declared, rules := range ps.rules {
		if strings.EqualFold(declared, token) {
			return rules
		}
	}
	return nil
}

// SelectRules picks the rule list governing a concrete user agent:
// the longest declared token that is a case-insensitive prefix of the query
// wins; the wildcard '*' group is the fallback when no specific token
// matches. Returns nil when nothing applies.
func (ps *PermissionSet) SelectRules(userAgent string) []domain.Rule {
	q := strings.ToLower(userAgent)

	var (
		best    string
		bestLen = -1
	)
	for declared := range ps.rules {
		if declared == "*" {
			continue
		}
		d := strings.ToLower(declared)
		if strings.HasPrefix(q, d) && len(d) > bestLen {
			best, bestLen = declared, len(d)
		}
	}
	if bestLen >= 0 {
		return ps.rules[best]
	}
	if wild, ok := ps.rules["*"]; ok {
		return wild
	}
	return nil
}

// Resolve answers whether userAgent may fetch path under this set. An empty
// set, or a user agent no group governs, resolves to the implicit allow.
func (ps *PermissionSet) Resolve(userAgent, path string) domain.Verdict {
	return domain.ResolvePath(ps.SelectRules(userAgent), path)
}

// Patterns returns the distinct pattern set declared for one exact token and
// kind, in declaration order.
func (ps *PermissionSet) Patterns(token string, kind domain.RuleKind) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, r := range ps.DeclaredRules(token) {
		if r.Kind != kind {
			continue
		}
		if _, dup := seen[r.Pattern]; dup {
			continue
		}
		seen[r.Pattern] = struct{}{}
		out = append(out, r.Pattern)
	}
	return out
}
