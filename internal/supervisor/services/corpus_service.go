// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/V19Amit/movie/internal/catalog"
)

// CorpusWarmer matches the corpus cache's load method, enabling tests to
// substitute a mock.
type CorpusWarmer interface {
	Load() (*catalog.Corpus, error)
}

// CorpusService warms the corpus cache at startup so the first request does
// not pay the load cost, then parks until shutdown.
//
// A failed load is permanent for the process lifetime, so the service
// returns suture.ErrDoNotRestart rather than letting the supervisor retry a
// load that cannot succeed. The failure stays visible through the readiness
// endpoint and metrics.
type CorpusService struct {
	warmer CorpusWarmer
	logger zerolog.Logger
}

// NewCorpusService creates a corpus warm-up service.
//
//nolint:gocritic // zerolog.Logger passed by value per zerolog convention
func NewCorpusService(warmer CorpusWarmer, logger zerolog.Logger) *CorpusService {
	return &CorpusService{
		warmer: warmer,
		logger: logger.With().Str("component", "corpus-service").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CorpusService) Serve(ctx context.Context) error {
	corpus, err := s.warmer.Load()
	if err != nil {
		s.logger.Error().Err(err).Msg("corpus warm-up failed")
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Int("movies", corpus.Size()).Msg("corpus warmed")

	<-ctx.Done()
	return ctx.Err()
}

// String implements fmt.Stringer for suture logging.
func (s *CorpusService) String() string {
	return "corpus-warmer"
}
