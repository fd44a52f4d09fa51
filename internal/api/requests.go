// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package api

// searchRequest carries the validated search query parameters.
// The query may be empty; an empty query lists the whole catalog.
type searchRequest struct {
	Query string `validate:"max=256"`
}

// recommendRequest carries the validated recommendation query parameters.
// Count zero means "use the configured default"; the engine enforces the
// configured [min, max] range on explicit counts.
type recommendRequest struct {
	Title string `validate:"required,max=512"`
	Count int    `validate:"omitempty,gte=0"`
}
