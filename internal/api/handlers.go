// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/V19Amit/movie/internal/catalog"
	"github.com/V19Amit/movie/internal/engine"
	"github.com/V19Amit/movie/internal/logging"
	"github.com/V19Amit/movie/internal/metrics"
	"github.com/V19Amit/movie/internal/models"
	"github.com/V19Amit/movie/internal/validation"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	engine *engine.Engine
	cache  *catalog.Cache
	logger zerolog.Logger
}

// NewHandler creates a handler backed by the given engine and corpus cache.
//
//nolint:gocritic // zerolog.Logger passed by value per zerolog convention
func NewHandler(eng *engine.Engine, cache *catalog.Cache, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: eng,
		cache:  cache,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// HealthLive handles GET /api/v1/health/live.
// Liveness only reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, models.HealthStatus{Status: "alive"})
}

// HealthReady handles GET /api/v1/health/ready.
// Readiness is gated on the corpus cache: the service is ready only once
// the corpus has loaded successfully. A failed load is permanent, so a
// Failed state reports unavailable until restart.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	state := h.cache.State()

	if state != catalog.StateReady {
		rw := NewResponseWriter(w, r)
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"corpus not loaded", models.HealthStatus{
				Status: "unavailable",
				Corpus: state.String(),
			})
		return
	}

	WriteSuccess(w, r, models.HealthStatus{
		Status: "ready",
		Corpus: state.String(),
	})
}

// CatalogStats handles GET /api/v1/catalog/stats.
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	corpus, err := h.cache.Load()
	if err != nil {
		rw.ServiceUnavailable(ErrCodeDataUnavailable, "corpus data unavailable")
		return
	}

	WriteSuccess(w, r, models.CatalogStats{
		Movies:    corpus.Catalog().Len(),
		MatrixDim: corpus.Similarity().Dim(),
	})
}

// Search handles GET /api/v1/search?q=<query>.
// An empty query returns the full catalog in row order.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := searchRequest{Query: r.URL.Query().Get("q")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	titles, err := h.engine.Search(r.Context(), req.Query)
	if err != nil {
		h.logSearchError(r, req.Query, err)
		rw.ServiceUnavailable(ErrCodeDataUnavailable, "corpus data unavailable")
		return
	}

	metrics.RecordSearch(len(titles))

	WriteSuccess(w, r, models.SearchResult{
		Query:   req.Query,
		Titles:  titles,
		Matches: len(titles),
	})
}

// recommendationsPayload is the data section of a recommendations response.
type recommendationsPayload struct {
	Title           string                  `json:"title"`
	Count           int                     `json:"count"`
	Recommendations []engine.Recommendation `json:"recommendations"`
}

// Recommendations handles GET /api/v1/recommendations?title=<title>&count=<n>.
// Count is optional; when absent the configured default applies.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	start := time.Now()

	req, ok := parseRecommendRequest(rw, r)
	if !ok {
		return
	}

	recs, err := h.engine.Recommend(r.Context(), req.Title, req.Count)
	if err != nil {
		h.respondRecommendError(rw, r, req, err, start)
		return
	}

	metrics.RecordRecommendation("ok", time.Since(start))

	WriteSuccess(w, r, recommendationsPayload{
		Title:           req.Title,
		Count:           len(recs),
		Recommendations: recs,
	})
}

// respondRecommendError maps engine errors to HTTP status codes and records
// the outcome metric.
func (h *Handler) respondRecommendError(rw *ResponseWriter, r *http.Request, req *recommendRequest, err error, start time.Time) {
	switch {
	case errors.Is(err, engine.ErrInvalidCount):
		metrics.RecordRecommendation("invalid_count", time.Since(start))
		rw.Error(http.StatusBadRequest, ErrCodeInvalidCount, err.Error())

	case errors.Is(err, engine.ErrNotFound):
		metrics.RecordRecommendation("not_found", time.Since(start))
		rw.NotFound(ErrCodeTitleNotFound, "title not found in catalog: "+req.Title)

	case errors.Is(err, catalog.ErrDataUnavailable):
		metrics.RecordRecommendation("data_unavailable", time.Since(start))
		logging.Ctx(r.Context()).Error().Err(err).Msg("corpus unavailable for recommendation")
		rw.ServiceUnavailable(ErrCodeDataUnavailable, "corpus data unavailable")

	default:
		metrics.RecordRecommendation("error", time.Since(start))
		logging.Ctx(r.Context()).Error().Err(err).Msg("recommendation failed")
		rw.InternalError("recommendation failed")
	}
}

func (h *Handler) logSearchError(r *http.Request, query string, err error) {
	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("query", query).
		Msg("search failed")
}

// parseRecommendRequest extracts and validates recommendation query params.
// Returns false after writing an error response when the request is invalid.
func parseRecommendRequest(rw *ResponseWriter, r *http.Request) (*recommendRequest, bool) {
	q := r.URL.Query()

	req := &recommendRequest{Title: q.Get("title")}

	if raw := q.Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			rw.BadRequest("count must be an integer: " + raw)
			return nil, false
		}
		req.Count = count
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return nil, false
	}

	return req, true
}
