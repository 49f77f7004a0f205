package dirparser

import (
	"strings"
	"testing"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
)

func TestScanExperimental(t *testing.T) {
	text := `User-agent: *
Disallow: /private
DisallowAITraining: /
content-usage: noai
Content-Usage: /articles noai
Unknown-Thing: value
DisallowAITraining:
`
	out, err := ScanExperimental(strings.NewReader(text), "example.com", domain.SourceAI, DefaultExperimentalDirectives)
	if err != nil {
		t.Fatalf("ScanExperimental() error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d directives, want 3: %+v", len(out), out)
	}

	if out[0].Directive != "DisallowAITraining" || out[0].Value != "/" || out[0].Line != 3 {
		t.Errorf("directive[0] = %+v", out[0])
	}
	// lowercased occurrence reports the configured casing
	if out[1].Directive != "Content-Usage" || out[1].Value != "noai" || out[1].Line != 4 {
		t.Errorf("directive[1] = %+v", out[1])
	}
	if out[2].Value != "/articles noai" || out[2].Line != 5 {
		t.Errorf("directive[2] = %+v", out[2])
	}
	for _, d := range out {
		if d.Domain != "example.com" || d.Source != domain.SourceAI {
			t.Errorf("attribution = %+v", d)
		}
	}
}

func TestScanExperimental_NoneFound(t *testing.T) {
	out, err := ScanExperimental(strings.NewReader("User-agent: *\nDisallow: /\n"), "example.com", domain.SourceRobots, DefaultExperimentalDirectives)
	if err != nil {
		t.Fatalf("ScanExperimental() error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d directives, want none", len(out))
	}
}
