package domain

// UserAgentGroup is an ordered list of rules that one or more contiguously
// declared user-agent tokens share. Groups are produced in file order by the
// directive parser; later groups for an already-seen token append to, never
// replace, its earlier rules.
type UserAgentGroup struct {
	// Agents holds the user-agent tokens declared for this group,
	// case-preserved, in declaration order.
	Agents []string

	// Rules holds the group's Allow/Disallow rules in declaration order.
	// Each rule is already attributed to a single agent token.
	Rules []Rule
}

// RulesFor returns the group's rules attributed to the given declared token.
func (g UserAgentGroup) RulesFor(agent string) []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.UserAgent == agent {
			out = append(out, r)
		}
	}
	return out
}
