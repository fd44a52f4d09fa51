// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

// Package models defines the payload types returned by the HTTP API.
package models

// HealthStatus is the payload for liveness and readiness endpoints.
type HealthStatus struct {
	Status string `json:"status"`
	Corpus string `json:"corpus,omitempty"`
}

// CatalogStats summarises the loaded corpus.
type CatalogStats struct {
	Movies    int `json:"movies"`
	MatrixDim int `json:"matrix_dim"`
}

// SearchResult is the payload for title search responses.
type SearchResult struct {
	Query   string   `json:"query"`
	Titles  []string `json:"titles"`
	Matches int      `json:"matches"`
}
