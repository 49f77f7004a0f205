package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crawlcheck/crawlcheck/internal/audit/common/utils"
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
)

// Presence records which declaration files a collaborator found for one
// domain (the domain_files_map.csv row: "domain,files" with ';'-joined
// file names).
type Presence struct {
	Domain string
	files  map[string]struct{}
}

// Has reports whether the named file was present for the domain.
func (p Presence) Has(src domain.Source) bool {
	_, ok := p.files[src.FileName()]
	return ok
}

// HasRuleFiles reports whether both robots.txt and ai.txt were present.
func (p Presence) HasRuleFiles() bool {
	return p.Has(domain.SourceRobots) && p.Has(domain.SourceAI)
}

// HasAnyRuleFile reports whether robots.txt or ai.txt was present.
func (p Presence) HasAnyRuleFile() bool {
	return p.Has(domain.SourceRobots) || p.Has(domain.SourceAI)
}

// LoadPresenceCSV reads the domain->files map. Rows with a blank domain are
// skipped; domains are canonicalized. The header row is required.
func LoadPresenceCSV(path string) ([]Presence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presence csv %s: %w", path, err)
	}
	defer f.Close()
	return ParsePresenceCSV(f)
}

// ParsePresenceCSV parses presence rows from a reader.
func ParsePresenceCSV(r io.Reader) ([]Presence, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read presence csv header: %w", err)
	}
	if len(header) != 2 || !strings.EqualFold(header[0], "domain") || !strings.EqualFold(header[1], "files") {
		return nil, fmt.Errorf("unexpected presence csv header: %v", header)
	}

	var out []Presence
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read presence csv row: %w", err)
		}
		dom := utils.CanonicalDomain(rec[0])
		if dom == "" {
			continue
		}
		p := Presence{Domain: dom, files: make(map[string]struct{})}
		for _, name := range strings.Split(rec[1], ";") {
			name = strings.TrimSpace(name)
			if name != "" {
				p.files[name] = struct{}{}
			}
		}
		out = append(out, p)
	}
	return out, nil
}
