// Package executor answers two-keyword OR queries against the published
// index.
package executor

import (
	"context"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/merger"
)

// SearchResult is the answer to one query. Matched is false when neither
// keyword is in the index; Documents is then nil. A matched query always has
// at least one document.
type SearchResult struct {
	Keywords  [2]string      `json:"keywords"`
	Limit     int            `json:"limit"`
	Matched   bool           `json:"matched"`
	Documents []string       `json:"documents"`
	TermStats map[string]int `json:"term_stats"`
}

// IndexProvider hands out the currently published index.
type IndexProvider interface {
	Index() (*index.Index, error)
}

type Executor struct {
	indexes IndexProvider
	logger  *slog.Logger
}

func New(indexes IndexProvider) *Executor {
	return &Executor{
		indexes: indexes,
		logger:  slog.Default().With("component", "query-executor"),
	}
}

// Execute runs "kw1 OR kw2" and returns at most limit documents. Keywords
// must already be normalised. An unindexed keyword is not an error.
func (e *Executor) Execute(ctx context.Context, kw1, kw2 string, limit int) (*SearchResult, error) {
	x, err := e.indexes.Index()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = merger.DefaultLimit
	}
	result := &SearchResult{
		Keywords:  [2]string{kw1, kw2},
		Limit:     limit,
		TermStats: make(map[string]int, 2),
	}
	if !x.Contains(kw1) && !x.Contains(kw2) {
		result.TermStats[kw1] = 0
		result.TermStats[kw2] = 0
		e.logger.Debug("no keyword indexed", "kw1", kw1, "kw2", kw2)
		return result, nil
	}
	l1, _ := x.Lookup(kw1)
	l2, _ := x.Lookup(kw2)
	result.TermStats[kw1] = len(l1)
	result.TermStats[kw2] = len(l2)
	result.Matched = true
	result.Documents = merger.TopSearch(l1, l2, limit)
	return result, nil
}
