package auditor

import (
	"github.com/crawlcheck/crawlcheck/internal/audit/domain"
)

// Corpus is the slice of the corpus tree the auditor needs: locate and read
// one domain's declaration files.
type Corpus interface {
	ReadSource(dom string, src domain.Source) (text []byte, found bool, err error)
}

// Registry is the known AI-crawler registry shared by the conflict, link,
// and typo stages.
type Registry interface {
	Agents() []string
	Known(token string) bool
	Nearest(token string) (string, float64)
}
