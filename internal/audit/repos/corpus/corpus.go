// Package corpus reads the downloaded file tree the audit runs over:
// root/YYYY-MM-DD/files/split_NNNNN/<domain>/{robots.txt,ai.txt,llms.txt},
// plus the presence CSV that records which files exist per domain.
package corpus

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
)

var (
	dateDirRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	splitDirRe = regexp.MustCompile(`^split_\d{5}$`)
)

// Tree is one snapshot's file tree, anchored at its files/ directory.
type Tree struct {
	filesRoot string
	splits    []string
}

// OpenLatest locates the most recent date-stamped snapshot under base and
// opens its files/ directory. A missing or empty base is the one fatal
// corpus condition: there is nothing to audit.
func OpenLatest(base string) (*Tree, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus root %s: %w", base, err)
	}
	var dates []string
	for _, e := range entries {
		if e.IsDir() && dateDirRe.MatchString(e.Name()) {
			dates = append(dates, e.Name())
		}
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no date-stamped snapshot folders under %s", base)
	}
	sort.Strings(dates)
	return Open(filepath.Join(base, dates[len(dates)-1], "files"))
}

// Open opens a snapshot's files/ directory directly.
func Open(filesRoot string) (*Tree, error) {
	entries, err := os.ReadDir(filesRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus files dir %s: %w", filesRoot, err)
	}
	var splits []string
	for _, e := range entries {
		if e.IsDir() && splitDirRe.MatchString(e.Name()) {
			splits = append(splits, e.Name())
		}
	}
	if len(splits) == 0 {
		return nil, fmt.Errorf("no split folders under %s", filesRoot)
	}
	sort.Strings(splits)
	return &Tree{filesRoot: filesRoot, splits: splits}, nil
}

// Root returns the opened files/ directory.
func (t *Tree) Root() string { return t.filesRoot }

// DomainDir locates a domain's directory across splits. Returns false when
// the domain has no directory in any split.
func (t *Tree) DomainDir(dom string) (string, bool) {
	for _, split := range t.splits {
		cand := filepath.Join(t.filesRoot, split, dom)
		if fi, err := os.Stat(cand); err == nil && fi.IsDir() {
			return cand, true
		}
	}
	return "", false
}

// ReadSource reads one of a domain's declaration files. Invalid UTF-8
// sequences are dropped rather than failing the read; the bytes are
// otherwise returned exactly as downloaded so line numbers stay faithful.
// Returns found=false when the domain directory or file does not exist.
func (t *Tree) ReadSource(dom string, src domain.Source) (text []byte, found bool, err error) {
	dir, ok := t.DomainDir(dom)
	if !ok {
		return nil, false, nil
	}
	b, err := os.ReadFile(filepath.Join(dir, src.FileName()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return bytes.ToValidUTF8(b, nil), true, nil
}
