// Package indexer builds keyword indexes from a corpus and publishes them for
// searching.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/tracing"
)

// Source supplies the corpus. Each method returns an error wrapping
// errors.ErrDocumentNotFound when the underlying resource is missing.
type Source interface {
	ListDocumentIDs(ctx context.Context) ([]string, error)
	LoadNoiseWords(ctx context.Context) ([]string, error)
	Tokenize(ctx context.Context, docID string) ([]string, error)
}

// BuildStats summarises a completed build. Generation counts successful
// publishes on one engine, starting at 1.
type BuildStats struct {
	Generation uint64        `json:"generation"`
	Documents  int           `json:"documents"`
	Keywords   int           `json:"keywords"`
	NoiseWords int           `json:"noise_words"`
	Duration   time.Duration `json:"duration"`
	BuiltAt    time.Time     `json:"built_at"`
}

// Build reads the noise words, then tallies and merges every document in
// manifest order. Any source error aborts the build and no index is
// returned.
func Build(ctx context.Context, src Source) (*index.Index, *tokenizer.NoiseWords, error) {
	_, span := tracing.StartChildSpan(ctx, "noise-words")
	words, err := src.LoadNoiseWords(ctx)
	span.End()
	if err != nil {
		return nil, nil, fmt.Errorf("loading noise words: %w", err)
	}
	noise := tokenizer.NewNoiseWords(words)
	normalizer := tokenizer.NewNormalizer(noise)
	span.SetAttr("words", noise.Len())

	_, span = tracing.StartChildSpan(ctx, "manifest")
	docIDs, err := src.ListDocumentIDs(ctx)
	span.End()
	if err != nil {
		return nil, nil, fmt.Errorf("listing documents: %w", err)
	}
	span.SetAttr("documents", len(docIDs))

	_, span = tracing.StartChildSpan(ctx, "merge-documents")
	defer span.End()
	x := index.New()
	for _, docID := range docIDs {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("building index: %w", err)
		}
		tokens, err := src.Tokenize(ctx, docID)
		if err != nil {
			return nil, nil, fmt.Errorf("reading document %s: %w", docID, err)
		}
		x.MergeDocument(index.Tally(docID, tokens, normalizer))
	}
	span.SetAttr("keywords", x.Len())
	return x, noise, nil
}

// Notifier is told about every successfully published index.
type Notifier interface {
	IndexPublished(ctx context.Context, stats BuildStats) error
}

// snapshot is an index together with the stats of the build that made it.
type snapshot struct {
	index *index.Index
	stats BuildStats
}

// Engine owns the currently published index. Rebuilds run one at a time and
// replace the published index only when they succeed, so readers never see a
// partial build.
type Engine struct {
	source    Source
	metrics   *metrics.Metrics
	notifiers []Notifier
	logger    *slog.Logger

	buildMu sync.Mutex
	builds  atomic.Int64
	current atomic.Pointer[snapshot]
}

// NewEngine returns an engine with nothing published. m may be nil.
func NewEngine(src Source, m *metrics.Metrics, notifiers ...Notifier) *Engine {
	return &Engine{
		source:    src,
		metrics:   m,
		notifiers: notifiers,
		logger:    logger.WithComponent("indexer"),
	}
}

// Rebuild builds a fresh index from the source and publishes it. If another
// rebuild is running it returns ErrBuildInProgress without waiting.
func (e *Engine) Rebuild(ctx context.Context) (BuildStats, error) {
	if !e.buildMu.TryLock() {
		return BuildStats{}, apperrors.ErrBuildInProgress
	}
	defer e.buildMu.Unlock()

	traceID := logger.RequestID(ctx)
	if traceID == "" {
		traceID = fmt.Sprintf("build-%d", e.builds.Add(1))
	}
	ctx, span := tracing.StartSpan(ctx, "index.rebuild", traceID)
	defer func() {
		span.End()
		span.Log(e.logger)
	}()

	start := time.Now()
	x, noise, err := Build(ctx, e.source)
	if err != nil {
		e.observeBuild("failure", 0, time.Since(start))
		e.logger.Error("index build failed", "error", err)
		return BuildStats{}, err
	}
	var generation uint64 = 1
	if prev := e.current.Load(); prev != nil {
		generation = prev.stats.Generation + 1
	}
	stats := BuildStats{
		Generation: generation,
		Documents:  x.DocCount(),
		Keywords:   x.Len(),
		NoiseWords: noise.Len(),
		Duration:   time.Since(start),
		BuiltAt:    time.Now().UTC(),
	}
	e.current.Store(&snapshot{index: x, stats: stats})
	e.observeBuild("success", stats.Documents, stats.Duration)
	if e.metrics != nil {
		e.metrics.IndexKeywords.Set(float64(stats.Keywords))
	}
	e.logger.Info("index published",
		"generation", stats.Generation,
		"documents", stats.Documents,
		"keywords", stats.Keywords,
		"noise_words", stats.NoiseWords,
		"duration", stats.Duration,
	)

	for _, n := range e.notifiers {
		if err := n.IndexPublished(ctx, stats); err != nil {
			e.logger.Warn("index notifier failed", "error", err)
		}
	}
	return stats, nil
}

// Index returns the published index, or ErrIndexNotReady before the first
// successful build. The returned index must not be mutated.
func (e *Engine) Index() (*index.Index, error) {
	s := e.current.Load()
	if s == nil {
		return nil, apperrors.ErrIndexNotReady
	}
	return s.index, nil
}

// Stats returns the stats of the published index and whether one exists.
func (e *Engine) Stats() (BuildStats, bool) {
	s := e.current.Load()
	if s == nil {
		return BuildStats{}, false
	}
	return s.stats, true
}

func (e *Engine) observeBuild(status string, docs int, d time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.IndexBuildsTotal.WithLabelValues(status).Inc()
	e.metrics.IndexBuildDuration.Observe(d.Seconds())
	e.metrics.DocsIndexedTotal.Add(float64(docs))
}
