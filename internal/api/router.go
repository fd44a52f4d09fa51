// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/V19Amit/movie/internal/catalog"
	"github.com/V19Amit/movie/internal/config"
	"github.com/V19Amit/movie/internal/engine"
	"github.com/V19Amit/movie/internal/middleware"
)

// Router wires handlers and middleware into an http.Handler.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from the application configuration.
//
//nolint:gocritic // zerolog.Logger passed by value per zerolog convention
func NewRouter(cfg *config.Config, eng *engine.Engine, cache *catalog.Cache, logger zerolog.Logger) *Router {
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type"},
		CORSMaxAge:         86400,

		RateLimitRequests: cfg.API.RateLimitReqs,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		RateLimitDisabled: cfg.API.RateLimitDisabled,
	})

	return &Router{
		handler:       NewHandler(eng, cache, logger),
		chiMiddleware: mw,
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints get permissive rate limiting so monitoring tools
	// can poll frequently.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/catalog/stats", router.handler.CatalogStats)
		r.Get("/search", router.handler.Search)
		r.Get("/recommendations", router.handler.Recommendations)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
