package rulemap_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/crawlcheck/crawlcheck/internal/audit/common/log"
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/dirparser"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/permset"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

func parseSet(t *testing.T, dom string, src domain.Source, text string) *permset.PermissionSet {
	t.Helper()
	groups, err := dirparser.Parse(strings.NewReader(text), src, logpkg.NewNoopLogger())
	require.NoError(t, err)
	return permset.New(dom, src, groups)
}

func TestFromPermissionSets(t *testing.T) {
	rob := parseSet(t, "example.com", domain.SourceRobots, `User-agent: *
Disallow: /tmp

User-agent: GPTBot
Allow: /docs
Disallow: /
`)
	ai := parseSet(t, "example.com", domain.SourceAI, `User-agent: ClaudeBot
Disallow: /private
`)

	dr := rulemap.FromPermissionSets(rob, ai)
	require.Contains(t, dr, "robots")
	require.Contains(t, dr, "ai")

	assert.Equal(t, []string{"/tmp"}, dr["robots"]["*"].Disallow)
	assert.Equal(t, []string{"/docs"}, dr["robots"]["GPTBot"].Allow)
	assert.Equal(t, []string{"/"}, dr["robots"]["GPTBot"].Disallow)
	assert.Equal(t, []string{"/private"}, dr["ai"]["ClaudeBot"].Disallow)
}

func TestFromPermissionSets_EmptySetContributesEmptyEntry(t *testing.T) {
	dr := rulemap.FromPermissionSets(
		permset.Empty("example.com", domain.SourceRobots),
		nil,
	)
	require.Contains(t, dr, "robots")
	assert.Empty(t, dr["robots"])
	assert.NotContains(t, dr, "ai")
}

func TestRenderDirectivesRoundTrip(t *testing.T) {
	orig := parseSet(t, "example.com", domain.SourceRobots, `User-agent: GPTBot
User-agent: ClaudeBot
Disallow: /private
Allow: /private/docs

User-agent: *
Disallow: /tmp
`)

	dr := rulemap.FromPermissionSets(orig)
	rendered := dr["robots"].RenderDirectives()
	reparsed := parseSet(t, "example.com", domain.SourceRobots, rendered)

	assert.ElementsMatch(t, orig.Agents(), reparsed.Agents())
	for _, agent := range orig.Agents() {
		for _, kind := range []domain.RuleKind{domain.RuleAllow, domain.RuleDisallow} {
			assert.Equal(t, orig.Patterns(agent, kind), reparsed.Patterns(agent, kind), "agent %q kind %v", agent, kind)
		}
	}

	// resolution behavior survives the round trip
	for _, probe := range []struct{ ua, path string }{
		{"GPTBot", "/private/docs/x"},
		{"GPTBot", "/private/other"},
		{"UnknownBot", "/tmp/file"},
	} {
		assert.Equal(t,
			orig.Resolve(probe.ua, probe.path).Allowed,
			reparsed.Resolve(probe.ua, probe.path).Allowed,
			"%s %s", probe.ua, probe.path)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := rulemap.Map{
		"example.com": rulemap.DomainRules{
			"robots": rulemap.SourceRules{
				"GPTBot": {Allow: []string{"/docs"}, Disallow: []string{"/"}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, rulemap.Encode(&buf, m))
	assert.Contains(t, buf.String(), `"disallow"`)

	got, err := rulemap.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions_map.json")
	m := rulemap.Map{
		"example.com": rulemap.DomainRules{
			"ai": rulemap.SourceRules{"ClaudeBot": {Disallow: []string{"/private"}}},
		},
	}
	require.NoError(t, rulemap.WriteFile(path, m))

	got, err := rulemap.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = rulemap.ReadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
