package auditor

import (
	"bufio"
	"bytes"
	"net/url"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/crawlcheck/crawlcheck/internal/audit/common/utils"
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
)

// CheckLinks parses llms.txt as markdown-like text, resolves each link
// target to a path on the domain, and probes that path against both rule
// files with a conservative user-agent set: every registry crawler plus the
// wildcard. A link is flagged when any probed agent is disallowed; the first
// blocking source (robots before ai) is named with its deciding line.
//
// Experimental disallows (DisallowAITraining at root, Content-Usage paths)
// from either rule file also block, attributed to their source and line.
//
// Off-site and unparseable targets are skipped and counted, never reported.
// A scan failure (a line exceeding the scanner's limit) returns an error so
// the caller can mark the source unreadable instead of keeping a partial
// result.
func CheckLinks(dom string, llmsText []byte, rob, ai *permset.PermissionSet, reg Registry, exp []domain.ExperimentalDirective) (records []domain.LLMSLinkRecord, skipped int, err error) {
	probes := append([]string{"*"}, reg.Agents()...)
	sets := []*permset.PermissionSet{rob, ai}

	scanner := bufio.NewScanner(bytes.NewReader(llmsText))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if !bytes.Contains(line, []byte("](")) {
			continue
		}
		for _, target := range extractLinkTargets(line) {
			path, ok := resolveTarget(dom, target)
			if !ok {
				skipped++
				continue
			}
			if rec, blocked := firstBlock(dom, lineNum, target, path, probes, sets, exp); blocked {
				records = append(records, rec)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return records, skipped, nil
}

// extractLinkTargets pulls the destinations of every [label](target) on one
// line. Each line is parsed independently so records keep exact line
// attribution, which a whole-document markdown parse would lose.
func extractLinkTargets(line []byte) []string {
	p := parser.New()
	doc := p.Parse(line)

	var out []string
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if link, ok := node.(*ast.Link); ok && entering {
			if len(link.Destination) > 0 {
				out = append(out, string(link.Destination))
			}
		}
		return ast.GoToNext
	})
	return out
}

// resolveTarget converts a link target into an absolute path on the audited
// domain. Absolute URLs on another registrable domain and unparseable
// targets report ok=false.
func resolveTarget(dom, target string) (path string, ok bool) {
	if strings.HasPrefix(target, "/") {
		return target, true
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		u, err := url.Parse(target)
		if err != nil || u.Host == "" {
			return "", false
		}
		if !utils.SameSite(u.Host, dom) {
			return "", false
		}
		if u.Path == "" {
			return "/", true
		}
		return u.Path, true
	}
	// bare relative target, resolved against the root
	return "/" + target, true
}

// firstBlock probes a path with every user agent against robots first, then
// ai, then the experimental disallows.
func firstBlock(dom string, line int, target, path string, probes []string, sets []*permset.PermissionSet, exp []domain.ExperimentalDirective) (domain.LLMSLinkRecord, bool) {
	for _, ps := range sets {
		if ps == nil {
			continue
		}
		for _, ua := range probes {
			v := ps.Resolve(ua, path)
			if v.Allowed {
				continue
			}
			return domain.LLMSLinkRecord{
				Domain:    dom,
				Line:      line,
				URL:       target,
				BlockedBy: ps.Source(),
				RuleLine:  v.Line(),
			}, true
		}
	}
	for _, d := range exp {
		if !experimentalBlocks(d, path) {
			continue
		}
		return domain.LLMSLinkRecord{
			Domain:    dom,
			Line:      line,
			URL:       target,
			BlockedBy: d.Source,
			RuleLine:  d.Line,
		}, true
	}
	return domain.LLMSLinkRecord{}, false
}

// experimentalBlocks applies the informal semantics of the experimental
// directives: a root DisallowAITraining blocks everything; Content-Usage
// values block by literal path prefix.
func experimentalBlocks(d domain.ExperimentalDirective, path string) bool {
	switch strings.ToLower(d.Directive) {
	case "disallowaitraining":
		return d.Value == "/"
	case "content-usage":
		return d.Value == "/" || strings.HasPrefix(path, d.Value)
	default:
		return false
	}
}
