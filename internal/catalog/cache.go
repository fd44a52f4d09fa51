// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package catalog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/V19Amit/movie/internal/metrics"
)

// State is the corpus lifecycle state. Transitions are one-directional:
// Unloaded -> Loading -> Ready, or Unloaded -> Loading -> Failed.
// There is no reset or reload path; a process restart picks up new artifacts.
type State int32

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns the state name for logging and health reporting.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Cache is the process-wide, lazily-initialized holder of the corpus.
//
// The first Load call reads and validates both artifacts; concurrent callers
// racing that first load are serialized through sync.Once, so exactly one
// read happens and everyone shares its outcome. A failed load is remembered
// forever: later calls return the same error without touching the
// filesystem again.
type Cache struct {
	catalogPath    string
	similarityPath string
	logger         zerolog.Logger

	once   sync.Once
	state  atomic.Int32
	corpus *Corpus
	err    error
}

// NewCache creates a corpus cache for the given artifact paths.
// Nothing is read until the first Load call.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCache(catalogPath, similarityPath string, logger zerolog.Logger) *Cache {
	return &Cache{
		catalogPath:    catalogPath,
		similarityPath: similarityPath,
		logger:         logger.With().Str("component", "corpus").Logger(),
	}
}

// Load returns the corpus, loading it on the first call.
// Safe for concurrent use; all callers share the single load outcome.
func (c *Cache) Load() (*Corpus, error) {
	c.once.Do(c.load)
	return c.corpus, c.err
}

// State returns the current lifecycle state without triggering a load.
func (c *Cache) State() State {
	return State(c.state.Load())
}

// load performs the one-time artifact read. Called exactly once via c.once.
func (c *Cache) load() {
	c.state.Store(int32(StateLoading))
	metrics.CorpusState.Set(float64(StateLoading))

	start := time.Now()
	c.logger.Info().
		Str("catalog", c.catalogPath).
		Str("similarity", c.similarityPath).
		Msg("loading corpus artifacts")

	corpus, err := LoadCorpus(c.catalogPath, c.similarityPath)
	if err != nil {
		c.err = err
		c.state.Store(int32(StateFailed))
		metrics.CorpusState.Set(float64(StateFailed))
		c.logger.Error().Err(err).Msg("corpus load failed (will not retry)")
		return
	}

	c.corpus = corpus
	c.state.Store(int32(StateReady))
	metrics.CorpusState.Set(float64(StateReady))
	metrics.CorpusSize.Set(float64(corpus.Size()))
	metrics.CorpusLoadDuration.Set(time.Since(start).Seconds())

	c.logger.Info().
		Int("movies", corpus.Size()).
		Dur("duration", time.Since(start)).
		Msg("corpus loaded")
}
