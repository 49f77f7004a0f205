package domain

import (
	"fmt"
	"strings"
)

// Source identifies which declaration file a rule, directive, or link came from.
type Source uint8

const (
	// SourceRobots is the robots.txt file.
	SourceRobots Source = iota
	// SourceAI is the ai.txt file.
	SourceAI
	// SourceLLMS is the llms.txt file.
	SourceLLMS
)

// String returns a stable string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceRobots:
		return "robots"
	case SourceAI:
		return "ai"
	case SourceLLMS:
		return "llms"
	default:
		return fmt.Sprintf("Source(%d)", s)
	}
}

// FileName returns the on-disk file name for the source.
func (s Source) FileName() string {
	switch s {
	case SourceRobots:
		return "robots.txt"
	case SourceAI:
		return "ai.txt"
	case SourceLLMS:
		return "llms.txt"
	default:
		return ""
	}
}

// ParseSource converts a string into a Source.
// Accepts: "robots", "ai", "llms" and the corresponding file names (case-insensitive).
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "robots", "robots.txt":
		return SourceRobots, nil
	case "ai", "ai.txt":
		return SourceAI, nil
	case "llms", "llms.txt":
		return SourceLLMS, nil
	default:
		return 0, fmt.Errorf("unsupported Source: %q", s)
	}
}

// RuleSources lists the sources that carry robots-style directives.
// llms.txt is a link document, not a rule file.
var RuleSources = []Source{SourceRobots, SourceAI}
