// Package registry holds the configurable list of known AI-crawler
// user-agent tokens. The conflict and typo stages share it as their single
// source of truth.
package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
)

// defaultAgents is the built-in registry, lowercase. Sourced from published
// AI-crawler user-agent lists; override with a registry file when the
// ecosystem moves.
var defaultAgents = []string{
	"gptbot",
	"claudebot", "claude-user", "claude-searchbot",
	"ccbot", "google-extended", "applebot-extended",
	"facebookbot", "meta-externalagent", "diffbot",
	"perplexitybot", "perplexity-user",
	"omgili", "omgilibot", "imagesiftbot",
	"bytespider", "tiktokspider", "amazonbot",
	"youbot", "semrushbot-ocob", "petalbot",
	"velenpublicwebcrawler", "turnitinbot", "timpibot",
	"oai-searchbot", "icc-crawler", "ai2bot",
	"dataforseobot", "awariobot", "google-cloudvertexbot",
	"pangu-bot", "kangaroo bot", "sentibot",
	"img2dataset", "meltwater", "seekr",
	"peer39_crawler", "cohere", "duckassistbot",
	"scrapy", "cotoyogi", "aihitbot",
	"factset_spyderbot", "firecrawlagent",
}

// Registry is an immutable set of known crawler tokens (lowercase).
type Registry struct {
	agents []string
}

// Default returns the built-in registry.
func Default() *Registry {
	return &Registry{agents: defaultAgents}
}

// New builds a registry from explicit tokens, normalized to lowercase.
// Empty tokens are dropped.
func New(agents []string) *Registry {
	out := make([]string, 0, len(agents))
	for _, a := range agents {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}
	return &Registry{agents: out}
}

// Load reads a registry file. Supported formats by extension: YAML, JSON,
// TOML. The file must define an "agents" list of tokens.
func Load(path string) (*Registry, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, fmt.Errorf("unsupported registry file type: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load registry file %s: %w", path, err)
	}

	agents := k.Strings("agents")
	if len(agents) == 0 {
		return nil, fmt.Errorf("registry file %s missing 'agents' list", path)
	}
	return New(agents), nil
}

// Agents returns the registry tokens (lowercase).
func (r *Registry) Agents() []string { return r.agents }

// Known reports whether a declared user-agent token names a registry crawler:
// case-insensitive exact match or substring containment (operators routinely
// append version suffixes and vendor URLs to the bare token).
func (r *Registry) Known(token string) bool {
	t := strings.ToLower(token)
	for _, a := range r.agents {
		if strings.Contains(t, a) {
			return true
		}
	}
	return false
}

// Nearest returns the registry entry most similar to the token along with
// its normalized edit similarity in [0,1].
func (r *Registry) Nearest(token string) (string, float64) {
	t := strings.ToLower(token)
	var (
		best      string
		bestScore float64
	)
	for _, a := range r.agents {
		score := levenshtein.Similarity(t, a, nil)
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best, bestScore
}
