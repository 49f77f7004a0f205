package domain

import "strings"

// Robots-Exclusion-Protocol path matching.
//
// A pattern matches a path when the path starts with the pattern, with two
// extensions to plain prefix matching:
//   - '*' matches any (possibly empty) sequence of characters
//   - a trailing '$' anchors the pattern to the end of the path
//
// Precedence: the matching rule with the longest raw pattern wins regardless
// of declaration order or kind. When an allow and a disallow pattern of equal
// length both match, allow wins.

// ResolvePath resolves a path against an ordered rule list and returns the
// winning verdict. An empty rule list or no matching rule yields the implicit
// default: allow with no deciding rule.
func ResolvePath(rules []Rule, path string) Verdict {
	var (
		winner  *Rule
		bestLen = -1
	)
	for i := range rules {
		r := &rules[i]
		if !PatternMatches(r.Pattern, path) {
			continue
		}
		l := len(r.Pattern)
		switch {
		case l > bestLen:
			winner, bestLen = r, l
		case l == bestLen && r.IsAllow() && winner.IsDisallow():
			winner = r
		}
	}
	if winner == nil {
		return DefaultVerdict()
	}
	return Verdict{Allowed: winner.IsAllow(), Rule: winner}
}

// PatternMatches reports whether a raw rule pattern matches the given path.
func PatternMatches(pattern, path string) bool {
	anchored := strings.HasSuffix(pattern, "$")
	if anchored {
		pattern = strings.TrimSuffix(pattern, "$")
	}
	return matchFrom(pattern, path, anchored)
}

// matchFrom walks pattern segments split on '*'. The first segment must
// anchor at the start of the path; later segments may match anywhere after
// the previous one. When anchored, the final segment must end the path.
func matchFrom(pattern, path string, anchored bool) bool {
	segments := strings.Split(pattern, "*")

	// First segment is anchored at the start.
	if !strings.HasPrefix(path, segments[0]) {
		return false
	}
	rest := path[len(segments[0]):]

	for i := 1; i < len(segments); i++ {
		seg := segments[i]
		if seg == "" {
			// trailing or doubled '*': matches anything, including nothing
			if i == len(segments)-1 {
				rest = ""
			}
			continue
		}
		if i == len(segments)-1 && anchored {
			// last segment must terminate the path
			if !strings.HasSuffix(rest, seg) {
				return false
			}
			return true
		}
		idx := strings.Index(rest, seg)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(seg):]
	}

	if anchored {
		return rest == ""
	}
	return true
}
