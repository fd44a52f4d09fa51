// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/V19Amit/movie/internal/catalog"
	"github.com/V19Amit/movie/internal/config"
	"github.com/V19Amit/movie/internal/engine"
)

const (
	testCatalogCSV     = "movie_id,title,genres\n1,A,action\n2,B,comedy\n3,C,drama\n"
	testSimilarityJSON = "[[1.0,0.8,0.2],[0.8,1.0,0.1],[0.2,0.1,1.0]]"
)

func writeTestArtifacts(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "movies.csv")
	similarityPath := filepath.Join(dir, "similarity.json")

	if err := os.WriteFile(catalogPath, []byte(testCatalogCSV), 0o600); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	if err := os.WriteFile(similarityPath, []byte(testSimilarityJSON), 0o600); err != nil {
		t.Fatalf("writing similarity: %v", err)
	}

	return catalogPath, similarityPath
}

// newTestRouter builds a full router over real artifacts in a temp dir.
func newTestRouter(t *testing.T) (http.Handler, *catalog.Cache) {
	t.Helper()

	catalogPath, similarityPath := writeTestArtifacts(t)
	return newTestRouterWithPaths(t, catalogPath, similarityPath)
}

func newTestRouterWithPaths(t *testing.T, catalogPath, similarityPath string) (http.Handler, *catalog.Cache) {
	t.Helper()

	logger := zerolog.Nop()
	cache := catalog.NewCache(catalogPath, similarityPath, logger)

	eng, err := engine.NewEngine(cache, &engine.Config{
		DefaultCount: 2,
		MinCount:     1,
		MaxCount:     10,
	}, logger)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	cfg := &config.Config{
		API: config.APIConfig{
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
		},
	}

	router := NewRouter(cfg, eng, cache, logger)
	return router.Setup(), cache
}

func doRequest(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}

	return rec, &resp
}

func TestHealthLive(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec, resp := doRequest(t, handler, "/api/v1/health/live")

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
}

func TestHealthReady(t *testing.T) {
	t.Run("not ready before corpus load", func(t *testing.T) {
		handler, _ := newTestRouter(t)

		rec, resp := doRequest(t, handler, "/api/v1/health/ready")

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		if resp.Error == nil || resp.Error.Code != ErrCodeServiceUnavailable {
			t.Errorf("error = %+v, want code %s", resp.Error, ErrCodeServiceUnavailable)
		}
	})

	t.Run("ready after corpus load", func(t *testing.T) {
		handler, cache := newTestRouter(t)
		if _, err := cache.Load(); err != nil {
			t.Fatalf("loading corpus: %v", err)
		}

		rec, resp := doRequest(t, handler, "/api/v1/health/ready")

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !resp.Success {
			t.Error("Success = false, want true")
		}
	})

	t.Run("unavailable after failed load", func(t *testing.T) {
		handler, cache := newTestRouterWithPaths(t, "/nonexistent/movies.csv", "/nonexistent/similarity.json")
		if _, err := cache.Load(); err == nil {
			t.Fatal("expected load failure")
		}

		rec, _ := doRequest(t, handler, "/api/v1/health/ready")

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestCatalogStats(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec, resp := doRequest(t, handler, "/api/v1/catalog/stats")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data has type %T, want object", resp.Data)
	}
	if got := data["movies"].(float64); got != 3 {
		t.Errorf("movies = %v, want 3", got)
	}
	if got := data["matrix_dim"].(float64); got != 3 {
		t.Errorf("matrix_dim = %v, want 3", got)
	}
}

func TestSearchEndpoint(t *testing.T) {
	handler, _ := newTestRouter(t)

	tests := []struct {
		name        string
		path        string
		wantMatches float64
	}{
		{"single match", "/api/v1/search?q=b", 1},
		{"empty query returns all", "/api/v1/search?q=", 3},
		{"no match", "/api/v1/search?q=zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, handler, tt.path)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}

			data, ok := resp.Data.(map[string]interface{})
			if !ok {
				t.Fatalf("Data has type %T, want object", resp.Data)
			}
			if got := data["matches"].(float64); got != tt.wantMatches {
				t.Errorf("matches = %v, want %v", got, tt.wantMatches)
			}
			titles, ok := data["titles"].([]interface{})
			if !ok {
				t.Fatalf("titles has type %T, want array", data["titles"])
			}
			if float64(len(titles)) != tt.wantMatches {
				t.Errorf("len(titles) = %d, want %v", len(titles), tt.wantMatches)
			}
		})
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec, resp := doRequest(t, handler, "/api/v1/recommendations?title=A&count=2")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %+v", rec.Code, http.StatusOK, resp.Error)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data has type %T, want object", resp.Data)
	}
	if got := data["count"].(float64); got != 2 {
		t.Errorf("count = %v, want 2", got)
	}

	recs, ok := data["recommendations"].([]interface{})
	if !ok {
		t.Fatalf("recommendations has type %T, want array", data["recommendations"])
	}
	first := recs[0].(map[string]interface{})
	if first["title"] != "B" {
		t.Errorf("first title = %v, want B", first["title"])
	}
	if first["score"].(float64) != 0.8 {
		t.Errorf("first score = %v, want 0.8", first["score"])
	}
}

func TestRecommendationsErrors(t *testing.T) {
	handler, _ := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"missing title", "/api/v1/recommendations", http.StatusBadRequest, ErrCodeValidationFailed},
		{"unknown title", "/api/v1/recommendations?title=Z", http.StatusNotFound, ErrCodeTitleNotFound},
		{"count too high", "/api/v1/recommendations?title=A&count=11", http.StatusBadRequest, ErrCodeInvalidCount},
		{"count not an integer", "/api/v1/recommendations?title=A&count=abc", http.StatusBadRequest, ErrCodeBadRequest},
		{"negative count", "/api/v1/recommendations?title=A&count=-1", http.StatusBadRequest, ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, handler, tt.path)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if resp.Error == nil {
				t.Fatal("Error = nil, want populated")
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestDataUnavailableResponses(t *testing.T) {
	handler, _ := newTestRouterWithPaths(t, "/nonexistent/movies.csv", "/nonexistent/similarity.json")

	paths := []string{
		"/api/v1/catalog/stats",
		"/api/v1/search?q=a",
		"/api/v1/recommendations?title=A",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec, resp := doRequest(t, handler, path)

			if rec.Code != http.StatusServiceUnavailable {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
			}
			if resp.Error == nil || resp.Error.Code != ErrCodeDataUnavailable {
				t.Errorf("error = %+v, want code %s", resp.Error, ErrCodeDataUnavailable)
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
