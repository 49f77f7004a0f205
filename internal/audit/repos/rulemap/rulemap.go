// Package rulemap persists and serves the per-domain rule map built by the
// directive parser: domain -> source -> user agent -> declared pattern lists.
// The map is the hand-off artifact between the parse stage and the
// diff/conflict/typo stages, and its JSON form is the documented external
// schema.
package rulemap

import (
	"sort"
	"strings"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
)

// UAPatterns is one user agent's declared pattern lists.
type UAPatterns struct {
	Allow    []string `json:"allow"`
	Disallow []string `json:"disallow"`
}

// SourceRules maps declared user-agent token -> patterns for one file.
type SourceRules map[string]UAPatterns

// DomainRules maps source name ("robots", "ai") -> SourceRules.
type DomainRules map[string]SourceRules

// Map is the full corpus rule map keyed by domain.
type Map map[string]DomainRules

// FromPermissionSets flattens one domain's permission sets into the rule-map
// schema. Sets with zero declared groups contribute an empty entry.
func FromPermissionSets(sets ...*permset.PermissionSet) DomainRules {
	out := make(DomainRules, len(sets))
	for _, ps := range sets {
		if ps == nil {
			continue
		}
		sr := make(SourceRules)
		for _, agent := range ps.Agents() {
			sr[agent] = UAPatterns{
				Allow:    ps.Patterns(agent, domain.RuleAllow),
				Disallow: ps.Patterns(agent, domain.RuleDisallow),
			}
		}
		out[ps.Source().String()] = sr
	}
	return out
}

// RenderDirectives renders the textual robots-style form of one file's
// rules: a User-agent group per token followed by its Allow/Disallow lines.
// Re-parsing the output through the directive parser yields an equivalent
// permission set.
func (sr SourceRules) RenderDirectives() string {
	agents := make([]string, 0, len(sr))
	for a := range sr {
		agents = append(agents, a)
	}
	sort.Strings(agents)

	var b strings.Builder
	for _, a := range agents {
		b.WriteString("User-agent: ")
		b.WriteString(a)
		b.WriteByte('\n')
		for _, p := range sr[a].Allow {
			b.WriteString("Allow: ")
			b.WriteString(p)
			b.WriteByte('\n')
		}
		for _, p := range sr[a].Disallow {
			b.WriteString("Disallow: ")
			b.WriteString(p)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
