package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/internal/searcher/executor"
	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/metrics"
)

type SearchExecutor interface {
	Execute(ctx context.Context, kw1, kw2 string, limit int) (*executor.SearchResult, error)
}

// IndexManager rebuilds and describes the published index.
type IndexManager interface {
	Rebuild(ctx context.Context) (indexer.BuildStats, error)
	Stats() (indexer.BuildStats, bool)
}

type Handler struct {
	executor     SearchExecutor
	indexes      IndexManager
	cache        *cache.QueryCache
	metrics      *metrics.Metrics
	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// New wires the HTTP handlers. queryCache and m may be nil.
func New(exec SearchExecutor, indexes IndexManager, queryCache *cache.QueryCache, m *metrics.Metrics, defaultLimit, maxResults int) *Handler {
	return &Handler{
		executor:     exec,
		indexes:      indexes,
		cache:        queryCache,
		metrics:      m,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		logger:       slog.Default().With("component", "search-handler"),
	}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/search", h.Search)
	mux.HandleFunc("GET /api/v1/index/stats", h.IndexStats)
	mux.HandleFunc("POST /api/v1/index/rebuild", h.Rebuild)
	mux.HandleFunc("GET /api/v1/cache/stats", h.CacheStats)
	mux.HandleFunc("POST /api/v1/cache/invalidate", h.CacheInvalidate)
}

// Search serves GET /api/v1/search?kw1=..&kw2=..&limit=..; kw2 defaults to kw1.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	q := r.URL.Query()
	kw1, ok := tokenizer.Clean(q.Get("kw1"))
	if !ok {
		h.writeAppError(w, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "query parameter 'kw1' must be a word"))
		return
	}
	kw2 := kw1
	if raw := q.Get("kw2"); raw != "" {
		if kw2, ok = tokenizer.Clean(raw); !ok {
			h.writeAppError(w, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest, "query parameter 'kw2' must be a word"))
			return
		}
	}

	limit := h.defaultLimit
	if limitStr := q.Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeAppError(w, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest, "limit must be a positive integer, got %q", limitStr))
			return
		}
		limit = min(parsed, h.maxResults)
	}

	var result *executor.SearchResult
	var err error
	cacheHit := false
	compute := func() (*executor.SearchResult, error) {
		return h.executor.Execute(ctx, kw1, kw2, limit)
	}
	// The generation is read before compute looks up the index.
	if stats, published := h.indexes.Stats(); h.cache != nil && published {
		result, cacheHit, err = h.cache.GetOrCompute(ctx, stats.Generation, kw1, kw2, limit, compute)
	} else {
		result, err = compute()
	}
	if err != nil {
		h.observe("error", 0)
		log.Error("search execution failed", "kw1", kw1, "kw2", kw2, "error", err)
		if apperrors.HTTPStatusCode(err) == http.StatusInternalServerError {
			err = apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "search failed")
		}
		h.writeAppError(w, err)
		return
	}

	resultType := "hit"
	if !result.Matched {
		resultType = "no_match"
	}
	h.observe(resultType, len(result.Documents))
	log.Info("search completed",
		"kw1", kw1,
		"kw2", kw2,
		"matched", result.Matched,
		"returned", len(result.Documents),
		"cache_hit", cacheHit,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) IndexStats(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.indexes.Stats()
	if !ok {
		h.writeAppError(w, apperrors.ErrIndexNotReady)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// Rebuild serves POST /api/v1/index/rebuild. Missing corpus files answer 422
// and the previous index stays published.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	stats, err := h.indexes.Rebuild(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrDocumentNotFound) {
			err = apperrors.Newf(apperrors.ErrDocumentNotFound, http.StatusUnprocessableEntity, "previous index kept: %v", err)
		}
		h.writeAppError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}

	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeAppError(w, apperrors.New(apperrors.ErrInternal, http.StatusInternalServerError, "cache invalidation failed"))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) observe(resultType string, returned int) {
	if h.metrics == nil {
		return
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	if resultType != "error" {
		h.metrics.SearchResultsCount.Observe(float64(returned))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeAppError picks the status from err and reports its message.
func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	h.writeError(w, apperrors.HTTPStatusCode(err), err.Error())
}
