// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

// Package metrics provides Prometheus instrumentation for the
// recommendation service:
//   - API endpoint latency and throughput
//   - recommendation and search query outcomes
//   - corpus load state and size
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	// Recommendation query metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // "ok", "not_found", "invalid_count", "data_unavailable"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Search query metrics
	SearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Total number of title search queries",
		},
	)

	SearchResultCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_result_count",
			Help:    "Number of titles returned per search query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500, 1000},
		},
	)

	// Corpus metrics
	CorpusState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_state",
			Help: "Corpus lifecycle state (0=unloaded, 1=loading, 2=ready, 3=failed)",
		},
	)

	CorpusSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_movies",
			Help: "Number of movies in the loaded corpus",
		},
	)

	CorpusLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_load_duration_seconds",
			Help: "Time taken by the one-time corpus load",
		},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records a recommendation query outcome.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordSearch records a search query and its result size.
func RecordSearch(resultCount int) {
	SearchesTotal.Inc()
	SearchResultCount.Observe(float64(resultCount))
}
