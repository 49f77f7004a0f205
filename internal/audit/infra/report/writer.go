// Package report encodes a run's analytical products into the persisted
// artifacts downstream tooling consumes: the rule map and diff JSON files
// plus CSV tables for conflicts, experimental directives, blocked llms.txt
// links, typo suggestions, and corpus aggregates.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
	"github.com/crawlcheck/crawlcheck/internal/audit/repos/rulemap"
	"github.com/crawlcheck/crawlcheck/internal/audit/services/auditor"
)

// Artifact file names, stable across runs.
const (
	FileRuleMap      = "permissions_map.json"
	FileDiff         = "permissions_diff.json"
	FileConflicts    = "ai_conflicts.csv"
	FileExperimental = "experimental_directives.csv"
	FileLLMS         = "llms_conflicts.csv"
	FileTypos        = "ua_typos.csv"
	FileAggregates   = "ua_aggregates.csv"
)

// Writer writes all run artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter ensures the output directory exists.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// WriteAll persists every artifact of the run result.
func (w *Writer) WriteAll(res *auditor.RunResult) error {
	if err := rulemap.WriteFile(filepath.Join(w.dir, FileRuleMap), res.RuleMap); err != nil {
		return err
	}
	if err := w.writeDiff(res.Diffs); err != nil {
		return err
	}
	if err := w.writeConflicts(res.Conflicts); err != nil {
		return err
	}
	if err := w.writeExperimental(res.Experiment); err != nil {
		return err
	}
	if err := w.writeLLMS(res.Links); err != nil {
		return err
	}
	if err := w.writeTypos(res.Typos); err != nil {
		return err
	}
	return w.writeAggregates(res.Aggregates)
}

func (w *Writer) writeDiff(diffs map[string]map[string]domain.DiffResult) error {
	path := filepath.Join(w.dir, FileDiff)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diffs); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode diff output: %w", err)
	}
	return f.Close()
}

func (w *Writer) writeConflicts(records []domain.ConflictRecord) error {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Domain != records[j].Domain {
			return records[i].Domain < records[j].Domain
		}
		if records[i].UserAgent != records[j].UserAgent {
			return records[i].UserAgent < records[j].UserAgent
		}
		return records[i].Path < records[j].Path
	})
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Domain, r.UserAgent, r.Path,
			r.RobotsVerdict, r.AIVerdict,
			strconv.Itoa(r.RobotsLine), strconv.Itoa(r.AILine),
		})
	}
	return w.writeCSV(FileConflicts,
		[]string{"domain", "user_agent", "path", "robots_verdict", "ai_verdict", "robots_line", "ai_line"},
		rows)
}

func (w *Writer) writeExperimental(records []domain.ExperimentalDirective) error {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Domain != records[j].Domain {
			return records[i].Domain < records[j].Domain
		}
		if records[i].Source != records[j].Source {
			return records[i].Source < records[j].Source
		}
		return records[i].Line < records[j].Line
	})
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Domain, r.Source.String(), r.Directive, r.Value, strconv.Itoa(r.Line),
		})
	}
	return w.writeCSV(FileExperimental,
		[]string{"domain", "source", "directive", "value", "line"},
		rows)
}

func (w *Writer) writeLLMS(records []domain.LLMSLinkRecord) error {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Domain != records[j].Domain {
			return records[i].Domain < records[j].Domain
		}
		return records[i].Line < records[j].Line
	})
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Domain, strconv.Itoa(r.Line), r.URL, r.BlockedBy.String(), strconv.Itoa(r.RuleLine),
		})
	}
	return w.writeCSV(FileLLMS,
		[]string{"domain", "line", "url", "blocking_source", "blocking_line"},
		rows)
}

func (w *Writer) writeTypos(records []domain.TypoSuggestion) error {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Domain != records[j].Domain {
			return records[i].Domain < records[j].Domain
		}
		return records[i].UnknownUA < records[j].UnknownUA
	})
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Domain, r.Source.String(), r.UnknownUA, r.Suggestion})
	}
	return w.writeCSV(FileTypos,
		[]string{"domain", "source", "unknown_ua", "suggestion"},
		rows)
}

// writeAggregates writes the corpus tally. Input arrives pre-sorted by the
// aggregator's deterministic order.
func (w *Writer) writeAggregates(counts []domain.AggregateCount) error {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			c.UserAgent,
			strconv.Itoa(c.RobotsAllow), strconv.Itoa(c.RobotsDisallow),
			strconv.Itoa(c.AIAllow), strconv.Itoa(c.AIDisallow),
			strconv.Itoa(c.Conflicts),
		})
	}
	return w.writeCSV(FileAggregates,
		[]string{"user_agent", "robots_allow", "robots_disallow", "ai_allow", "ai_disallow", "conflict_count"},
		rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		_ = f.Close()
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
