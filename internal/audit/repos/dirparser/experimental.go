package dirparser

import (
	"bufio"
	"io"
	"strings"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
)

// DefaultExperimentalDirectives lists the non-standard directive keywords the
// scanner looks for when no explicit set is configured.
var DefaultExperimentalDirectives = []string{
	"DisallowAITraining",
	"Content-Usage",
}

// ScanExperimental extracts experimental directive occurrences from one raw
// file. This is a pure text scan: no grouping or precedence semantics apply,
// matching the informal nature of these directives. Keyword matching is
// case-insensitive and colon-delimited; the reported directive name keeps
// the configured casing.
func ScanExperimental(r io.Reader, dom string, source domain.Source, directives []string) ([]domain.ExperimentalDirective, error) {
	scanner := bufio.NewScanner(r)

	var out []domain.ExperimentalDirective
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		line = strings.TrimSpace(line)

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if value == "" {
			continue
		}
		for _, d := range directives {
			if strings.EqualFold(key, d) {
				out = append(out, domain.ExperimentalDirective{
					Domain:    dom,
					Source:    source,
					Directive: d,
					Value:     value,
					Line:      lineNum,
				})
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
