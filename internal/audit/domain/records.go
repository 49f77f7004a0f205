package domain

// Analytical products derived from resolved rule sets. All are plain value
// types; report encoding lives in infra/report.

// DiffResult partitions the literal pattern sets of one user agent between
// robots.txt and ai.txt. The six lists are exhaustive and disjoint: every
// declared pattern lands in exactly one of them.
type DiffResult struct {
	AllowEqual         []string `json:"allow_equal"`
	AllowOnlyRobots    []string `json:"allow_only_robots"`
	AllowOnlyAI        []string `json:"allow_only_ai"`
	DisallowEqual      []string `json:"disallow_equal"`
	DisallowOnlyRobots []string `json:"disallow_only_robots"`
	DisallowOnlyAI     []string `json:"disallow_only_ai"`
}

// ConflictRecord reports a path for which robots.txt and ai.txt resolve to
// different verdicts for a known AI crawler. Lines are 0 when the deciding
// verdict was the implicit default (no rule on that side).
type ConflictRecord struct {
	Domain        string
	UserAgent     string
	Path          string
	RobotsVerdict string
	AIVerdict     string
	RobotsLine    int
	AILine        int
}

// ExperimentalDirective is a non-standard directive occurrence, reported
// independent of any user-agent grouping.
type ExperimentalDirective struct {
	Domain    string
	Source    Source
	Directive string
	Value     string
	Line      int
}

// LLMSLinkRecord flags an llms.txt link whose target path at least one probed
// user agent is disallowed from fetching.
type LLMSLinkRecord struct {
	Domain    string
	Line      int
	URL       string
	BlockedBy Source // first blocking source
	RuleLine  int    // deciding line in the blocking source, 0 for default
}

// TypoSuggestion names a declared user-agent token that matches no registry
// entry. Suggestion is empty when no entry scores above the cutoff, meaning
// the token is treated as genuinely unknown rather than a typo.
type TypoSuggestion struct {
	Domain     string
	Source     Source
	UnknownUA  string
	Suggestion string
}

// AggregateCount tallies explicit declarations and cross-file conflicts for
// one user agent across the corpus. Field addition is commutative so partial
// per-worker counts merge in any order.
type AggregateCount struct {
	UserAgent      string
	RobotsAllow    int
	RobotsDisallow int
	AIAllow        int
	AIDisallow     int
	Conflicts      int
	TotalRules     int
}

// Add merges another count for the same user agent into c.
func (c *AggregateCount) Add(o AggregateCount) {
	c.RobotsAllow += o.RobotsAllow
	c.RobotsDisallow += o.RobotsDisallow
	c.AIAllow += o.AIAllow
	c.AIDisallow += o.AIDisallow
	c.Conflicts += o.Conflicts
	c.TotalRules += o.TotalRules
}
