package domain

// Verdict represents the outcome of resolving a path against a rule list.
// Pure value type, no external dependencies.
type Verdict struct {
	Allowed bool  // true when the path may be fetched
	Rule    *Rule // the rule that decided the verdict; nil for the implicit default
}

// IsAllowed is a convenience accessor.
func (v Verdict) IsAllowed() bool { return v.Allowed }

// Line returns the 1-based line of the deciding rule, or 0 when the verdict
// is the implicit default.
func (v Verdict) Line() int {
	if v.Rule == nil {
		return 0
	}
	return v.Rule.Line
}

// Kind returns "allow" or "disallow" for report output.
func (v Verdict) Kind() string {
	if v.Allowed {
		return RuleAllow.String()
	}
	return RuleDisallow.String()
}

// DefaultVerdict returns the implicit allow used when no rule matches.
func DefaultVerdict() Verdict { return Verdict{Allowed: true} }
