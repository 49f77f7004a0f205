// Package dirparser turns raw robots-style directive files into ordered
// user-agent groups with line-attributed allow/disallow rules.
package dirparser

import (
	"bufio"
	"io"
	"strings"

	logpkg "github.com/crawlcheck/crawlcheck/internal/audit/common/log"
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
)

// parser state machine. Consecutive User-agent lines accumulate into one
// pending token set; the first Allow/Disallow line closes the set into an
// active group. The two explicit states keep the group-boundary rule
// testable in isolation.
type state uint8

const (
	stateCollectingAgents state = iota
	stateCollectingRules
)

// Parse reads one directive file and returns its user-agent groups in file
// order. Malformed lines are skipped with a warning, never fatal; a file
// with zero groups yields an empty (implicit allow-all) result.
//
// Behavior:
// - Strips a UTF-8 BOM at the start of the first line
// - Strips inline comments ('#' to end of line) and surrounding whitespace
// - Skips blank lines and lines without a colon
// - Keyword matching is case-insensitive; values are case-preserved
// - Unrecognized directive keywords are ignored here (the experimental
//   scanner re-reads the raw text independently)
func Parse(r io.Reader, source domain.Source, logger logpkg.Logger) ([]domain.UserAgentGroup, error) {
	scanner := bufio.NewScanner(r)

	var (
		groups  []domain.UserAgentGroup
		pending []string // user-agent tokens not yet closed into a group
		cur     int      = -1
		st      state    = stateCollectingRules
	)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := splitDirective(line)
		if !ok {
			logger.Warn(map[string]any{"source": source.String(), "line": lineNum, "raw": line}, "skip_malformed_line")
			continue
		}

		switch strings.ToLower(key) {
		case "user-agent":
			if st == stateCollectingRules {
				// a new declaration block begins
				pending = nil
				st = stateCollectingAgents
			}
			pending = append(pending, value)

		case "allow", "disallow":
			kind := domain.RuleAllow
			if strings.EqualFold(key, "disallow") {
				kind = domain.RuleDisallow
			}
			if len(pending) == 0 {
				logger.Warn(map[string]any{"source": source.String(), "line": lineNum, "raw": line}, "skip_rule_outside_group")
				continue
			}
			if st == stateCollectingAgents {
				// first non-UA directive closes the pending token set
				groups = append(groups, domain.UserAgentGroup{Agents: pending})
				cur = len(groups) - 1
				st = stateCollectingRules
			}
			for _, agent := range groups[cur].Agents {
				rule, err := domain.NewRule(agent, kind, value, lineNum, source)
				if err != nil {
					logger.Warn(map[string]any{"source": source.String(), "line": lineNum, "error": err.Error()}, "skip_invalid_rule")
					continue
				}
				groups[cur].Rules = append(groups[cur].Rules, rule)
			}

		default:
			logger.Debug(map[string]any{"source": source.String(), "line": lineNum, "key": key}, "skip_unrecognized_directive")
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A trailing User-agent block with no rules still declares the tokens.
	if st == stateCollectingAgents && len(pending) > 0 {
		groups = append(groups, domain.UserAgentGroup{Agents: pending})
	}

	logger.Debug(map[string]any{"source": source.String(), "groups": len(groups)}, "parse_done")
	return groups, nil
}

// splitDirective splits "Key: value" at the first colon. Returns ok=false
// for lines without a colon or with an empty value.
func splitDirective(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
