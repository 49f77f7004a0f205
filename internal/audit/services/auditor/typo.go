package auditor

import (
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
)

// DetectTypos flags declared user-agent tokens that match no registry entry
// (neither exactly nor as a substring, case-insensitive) and suggests the
// nearest registry crawler when its similarity clears the cutoff. Tokens
// below the cutoff are emitted with an empty suggestion: genuinely unknown,
// not a typo. The wildcard is never a typo candidate.
func DetectTypos(dom string, rob, ai *permset.PermissionSet, reg Registry, cutoff float64) []domain.TypoSuggestion {
	var out []domain.TypoSuggestion
	for _, ps := range []*permset.PermissionSet{rob, ai} {
		if ps == nil {
			continue
		}
		for _, ua := range ps.Agents() {
			if ua == "*" || reg.Known(ua) {
				continue
			}
			suggestion, score := reg.Nearest(ua)
			if score < cutoff {
				suggestion = ""
			}
			out = append(out, domain.TypoSuggestion{
				Domain:     dom,
				Source:     ps.Source(),
				UnknownUA:  ua,
				Suggestion: suggestion,
			})
		}
	}
	return out
}
