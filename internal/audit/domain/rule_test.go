package domain

import "testing"

func TestNewRule(t *testing.T) {
	cases := []struct {
		name    string
		ua      string
		kind    RuleKind
		pattern string
		line    int
		source  Source
		wantErr bool
	}{
		{"valid allow", "GPTBot", RuleAllow, "/docs", 3, SourceRobots, false},
		{"valid disallow from ai", "ClaudeBot", RuleDisallow, "/private", 10, SourceAI, false},
		{"trims whitespace", "  GPTBot  ", RuleAllow, "  /docs  ", 1, SourceRobots, false},
		{"empty user agent", "", RuleAllow, "/docs", 1, SourceRobots, true},
		{"empty pattern", "GPTBot", RuleAllow, "   ", 1, SourceRobots, true},
		{"zero line", "GPTBot", RuleAllow, "/docs", 0, SourceRobots, true},
		{"negative line", "GPTBot", RuleAllow, "/docs", -2, SourceRobots, true},
		{"llms source rejected", "GPTBot", RuleAllow, "/docs", 1, SourceLLMS, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRule(tc.ua, tc.kind, tc.pattern, tc.line, tc.source)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got rule %+v", r)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.UserAgent == "" || r.Pattern == "" {
				t.Fatalf("constructed rule not trimmed/populated: %+v", r)
			}
		})
	}
}

func TestParseRuleKind(t *testing.T) {
	cases := []struct {
		in      string
		want    RuleKind
		wantErr bool
	}{
		{"allow", RuleAllow, false},
		{"Disallow", RuleDisallow, false},
		{"  ALLOW  ", RuleAllow, false},
		{"deny", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseRuleKind(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRuleKind(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRuleKind(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRuleKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRuleProbePath(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"/docs", "/docs"},
		{"/docs/*", "/docs/"},
		{"/*.pdf", "/"},
		{"/exact$", "/exact"},
		{"*", "/"},
		{"/a/*/c", "/a/"},
	}
	for _, tc := range cases {
		r := mustRule(t, "GPTBot", RuleDisallow, tc.pattern, 1)
		if got := r.ProbePath(); got != tc.want {
			t.Errorf("ProbePath(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}
