// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

// Package config provides layered configuration loading for the
// recommendation service using Koanf v2.
//
// Precedence: environment variables > YAML config file > built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DataConfig locates the persisted corpus artifacts.
// Both artifacts are read exactly once per process lifetime; picking up new
// artifacts requires a restart.
type DataConfig struct {
	// CatalogPath is the CSV catalog artifact. The file must have a header
	// row containing a "title" column; row order defines the movie index.
	CatalogPath string `koanf:"catalog_path"`

	// SimilarityPath is the JSON similarity matrix artifact, an MxM array
	// of arrays aligned to the catalog row order.
	SimilarityPath string `koanf:"similarity_path"`
}

// RecommendConfig bounds the recommendation count.
type RecommendConfig struct {
	// DefaultCount is used when a request does not specify a count.
	DefaultCount int `koanf:"default_count"`

	// MinCount is the smallest permitted recommendation count.
	MinCount int `koanf:"min_count"`

	// MaxCount is the largest permitted recommendation count.
	MaxCount int `koanf:"max_count"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// APIConfig holds API middleware settings.
type APIConfig struct {
	// CORSOrigins lists allowed CORS origins. Empty means same-origin only.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the number of requests allowed per window per IP.
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limiting window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns off rate limiting entirely.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invariant violations.
// Artifact readability is deliberately not checked here; the corpus loader
// owns that failure mode.
func (c *Config) Validate() error {
	if c.Data.CatalogPath == "" {
		return fmt.Errorf("data.catalog_path must not be empty")
	}
	if c.Data.SimilarityPath == "" {
		return fmt.Errorf("data.similarity_path must not be empty")
	}

	if c.Recommend.MinCount < 1 {
		return fmt.Errorf("recommend.min_count = %d, must be >= 1", c.Recommend.MinCount)
	}
	if c.Recommend.MaxCount < c.Recommend.MinCount {
		return fmt.Errorf("recommend.max_count = %d, must be >= min_count (%d)",
			c.Recommend.MaxCount, c.Recommend.MinCount)
	}
	if c.Recommend.DefaultCount < c.Recommend.MinCount || c.Recommend.DefaultCount > c.Recommend.MaxCount {
		return fmt.Errorf("recommend.default_count = %d, must be within [%d, %d]",
			c.Recommend.DefaultCount, c.Recommend.MinCount, c.Recommend.MaxCount)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port = %d, must be within [1, 65535]", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout = %v, must be > 0", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout = %v, must be > 0", c.Server.ShutdownTimeout)
	}

	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("api.rate_limit_reqs = %d, must be >= 1", c.API.RateLimitReqs)
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("api.rate_limit_window = %v, must be > 0", c.API.RateLimitWindow)
		}
	}

	return nil
}
