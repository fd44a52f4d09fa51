// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

// Package engine implements top-N similarity recommendations and substring
// title search over the loaded corpus.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/V19Amit/movie/internal/catalog"
)

// ErrNotFound indicates the query title has no exact match in the catalog.
var ErrNotFound = errors.New("title not found in catalog")

// ErrInvalidCount indicates the requested recommendation count is outside
// the configured range. Rejected before any catalog lookup.
var ErrInvalidCount = errors.New("recommendation count out of range")

// CorpusProvider supplies the loaded corpus. Implemented by *catalog.Cache;
// the interface keeps the engine decoupled from the loading mechanics and
// makes it trivial to test against a fixed corpus.
type CorpusProvider interface {
	Load() (*catalog.Corpus, error)
}

// Config bounds the recommendation count.
type Config struct {
	// DefaultCount is used when a caller passes count 0.
	DefaultCount int

	// MinCount and MaxCount bound explicit counts, inclusive.
	MinCount int
	MaxCount int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultCount: 5,
		MinCount:     3,
		MaxCount:     10,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.MinCount < 1 {
		return fmt.Errorf("min count = %d, must be >= 1", c.MinCount)
	}
	if c.MaxCount < c.MinCount {
		return fmt.Errorf("max count = %d, must be >= min count (%d)", c.MaxCount, c.MinCount)
	}
	if c.DefaultCount < c.MinCount || c.DefaultCount > c.MaxCount {
		return fmt.Errorf("default count = %d, must be within [%d, %d]",
			c.DefaultCount, c.MinCount, c.MaxCount)
	}
	return nil
}

// Recommendation is a single ranked result.
type Recommendation struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Engine answers recommendation and search queries against the corpus.
// It is stateless apart from the shared immutable corpus and therefore safe
// for unlimited concurrent use.
type Engine struct {
	corpus CorpusProvider
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(corpus CorpusProvider, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		corpus: corpus,
		config: cfg,
		logger: logger.With().Str("component", "engine").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// CatalogSize returns the number of movies in the corpus.
func (e *Engine) CatalogSize() (int, error) {
	corpus, err := e.corpus.Load()
	if err != nil {
		return 0, err
	}
	return corpus.Size(), nil
}

// Search returns every catalog title containing the query as a
// case-insensitive substring, in catalog order. An empty query returns the
// full title list; no match returns an empty slice. The only error is
// corpus unavailability.
func (e *Engine) Search(ctx context.Context, query string) ([]string, error) {
	corpus, err := e.corpus.Load()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]string, 0)
	for _, movie := range corpus.Catalog().Movies() {
		if strings.Contains(strings.ToLower(movie.Title), needle) {
			matches = append(matches, movie.Title)
		}
	}

	e.logger.Debug().
		Str("query", query).
		Int("matches", len(matches)).
		Msg("search complete")

	return matches, nil
}

// Recommend returns the top-N movies most similar to the given title,
// excluding the title itself. Count 0 selects the configured default;
// anything else outside [MinCount, MaxCount] fails with ErrInvalidCount
// before any lookup. The result holds min(count, M-1) entries with
// non-increasing scores.
//
// The query title is resolved to the FIRST exact case-sensitive match in
// catalog order. Ranking sorts the query's similarity row by score
// descending; tied scores keep ascending-index order. Self-exclusion is by
// index identity rather than by dropping the ranked head: when another
// movie also scores a perfect 1.0 against the query and sits at a smaller
// index, it outranks the query itself and dropping the head would discard a
// real recommendation.
func (e *Engine) Recommend(ctx context.Context, title string, count int) ([]Recommendation, error) {
	if count == 0 {
		count = e.config.DefaultCount
	}
	if count < e.config.MinCount || count > e.config.MaxCount {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidCount, count, e.config.MinCount, e.config.MaxCount)
	}

	corpus, err := e.corpus.Load()
	if err != nil {
		return nil, err
	}

	queryIdx, ok := corpus.Catalog().IndexOf(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	ranked := rankRow(corpus.Similarity().Row(queryIdx), queryIdx)

	if count > len(ranked) {
		count = len(ranked)
	}

	result := make([]Recommendation, count)
	for i := 0; i < count; i++ {
		result[i] = Recommendation{
			Title: corpus.Catalog().Title(ranked[i].index),
			Score: ranked[i].score,
		}
	}

	e.logger.Debug().
		Str("title", title).
		Int("index", queryIdx).
		Int("returned", len(result)).
		Msg("recommendation complete")

	return result, nil
}

// scoredIndex pairs a catalog index with its similarity score.
type scoredIndex struct {
	index int
	score float64
}

// rankRow sorts a similarity row by score descending with ascending-index
// tie-break and removes the query's own entry by identity.
func rankRow(row []float64, queryIdx int) []scoredIndex {
	ranked := make([]scoredIndex, 0, len(row)-1)
	for j, score := range row {
		if j == queryIdx {
			continue
		}
		ranked = append(ranked, scoredIndex{index: j, score: score})
	}

	// Stable sort over ascending-index input keeps ties in ascending-index
	// order, matching the documented tie-break.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	return ranked
}
