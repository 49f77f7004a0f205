package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crawlcheck/crawlcheck/internal/audit/infra/config"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
)

func seedStore(t *testing.T, cfg *config.AppConfig, m rulemap.Map) {
	t.Helper()
	require.NoError(t, persistRuleMap(cfg, m))
}

func lookupConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		Env:         "dev",
		LogLevel:    "error",
		StorePath:   filepath.Join(t.TempDir(), "rules.db"),
		CacheSize:   10,
		BloomFPRate: 0.01,
	}
}

// TestLookup_ServesPersistedRules verifies a domain persisted by one run can
// be served back through the store read path without re-parsing the corpus.
func TestLookup_ServesPersistedRules(t *testing.T) {
	cfg := lookupConfig(t)
	seedStore(t, cfg, rulemap.Map{
		"example.com": {
			"robots": {"GPTBot": {Allow: []string{"/research"}}},
			"ai":     {"GPTBot": {Disallow: []string{"/research"}}},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, lookup(cfg, &buf, []string{"Example.COM."}))

	var out rulemap.Map
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Contains(t, out, "example.com", "lookup must canonicalize the queried name")
	assert.Equal(t, []string{"/research"}, out["example.com"]["robots"]["GPTBot"].Allow)
	assert.Equal(t, []string{"/research"}, out["example.com"]["ai"]["GPTBot"].Disallow)
}

func TestLookup_MissingDomainFails(t *testing.T) {
	cfg := lookupConfig(t)
	seedStore(t, cfg, rulemap.Map{
		"example.com": {"robots": {"*": {Disallow: []string{"/"}}}},
	})

	var buf bytes.Buffer
	err := lookup(cfg, &buf, []string{"example.com", "absent.org"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.org")

	// the found domain is still printed before the error is reported
	var out rulemap.Map
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Contains(t, out, "example.com")
	assert.NotContains(t, out, "absent.org")
}

func TestLookup_RequiresStorePath(t *testing.T) {
	cfg := lookupConfig(t)
	cfg.StorePath = ""

	var buf bytes.Buffer
	assert.Error(t, lookup(cfg, &buf, []string{"example.com"}))
}

func TestLookup_EmptyStoreFails(t *testing.T) {
	cfg := lookupConfig(t)

	var buf bytes.Buffer
	err := lookup(cfg, &buf, []string{"example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no snapshot")
}
