package domain

import (
	"fmt"
	"strings"
)

// RuleKind defines whether a rule grants or denies access to matching paths.
type RuleKind uint8

const (
	// RuleAllow grants access to paths matching the pattern.
	RuleAllow RuleKind = iota
	// RuleDisallow denies access to paths matching the pattern.
	RuleDisallow
)

// String returns a stable string representation of the rule kind.
func (k RuleKind) String() string {
	switch k {
	case RuleAllow:
		return "allow"
	case RuleDisallow:
		return "disallow"
	default:
		return fmt.Sprintf("RuleKind(%d)", k)
	}
}

// ParseRuleKind converts a string into a RuleKind.
// Accepts: "allow", "disallow" (case-insensitive).
func ParseRuleKind(s string) (RuleKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return RuleAllow, nil
	case "disallow":
		return RuleDisallow, nil
	default:
		return 0, fmt.Errorf("unsupported RuleKind: %q", s)
	}
}

// Rule is a single Allow/Disallow directive attributed to one user agent
// in one source file. Immutable once parsed.
//
// Notes:
// - Pattern retains raw wildcard ('*') and end-anchor ('$') syntax.
// - Line is 1-based and references the file exactly as downloaded.
type Rule struct {
	UserAgent string   // the declared user-agent token the rule applies to (case-preserved)
	Kind      RuleKind // allow or disallow
	Pattern   string   // raw path pattern, wildcards and anchors intact
	Line      int      // 1-based source line of the directive
	Source    Source   // which file declared the rule
}

// NewRule constructs a Rule and validates its fields.
func NewRule(userAgent string, kind RuleKind, pattern string, line int, source Source) (Rule, error) {
	r := Rule{
		UserAgent: strings.TrimSpace(userAgent),
		Kind:      kind,
		Pattern:   strings.TrimSpace(pattern),
		Line:      line,
		Source:    source,
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Validate checks the Rule for required fields and supported values.
func (r Rule) Validate() error {
	if r.UserAgent == "" {
		return fmt.Errorf("rule user agent must not be empty")
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule pattern must not be empty")
	}
	if r.Line < 1 {
		return fmt.Errorf("rule line must be 1-based, got %d", r.Line)
	}
	switch r.Kind {
	case RuleAllow, RuleDisallow:
		// ok
	default:
		return fmt.Errorf("unsupported RuleKind: %d", r.Kind)
	}
	switch r.Source {
	case SourceRobots, SourceAI:
		// ok
	default:
		return fmt.Errorf("rules may only come from robots or ai sources, got %v", r.Source)
	}
	return nil
}

// IsAllow returns true when the rule kind is allow.
func (r Rule) IsAllow() bool { return r.Kind == RuleAllow }

// IsDisallow returns true when the rule kind is disallow.
func (r Rule) IsDisallow() bool { return r.Kind == RuleDisallow }

// ProbePath converts the rule's pattern into a concrete path usable to
// exercise the matcher: the literal prefix before any wildcard, without the
// end anchor. A bare "*" pattern probes the root.
func (r Rule) ProbePath() string {
	p := strings.TrimSuffix(r.Pattern, "$")
	if i := strings.IndexByte(p, '*'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		p = "/"
	}
	return p
}
