// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

// Package catalog holds the immutable movie catalog and similarity matrix
// and the process-wide cache that loads them exactly once.
//
// The catalog is an ordered list of movies whose position defines their
// index; the similarity matrix is a square MxM matrix of pairwise scores
// aligned to that order. Both are read-only after load. The producer of the
// artifacts guarantees symmetry and a 1.0 diagonal; the loader only enforces
// what it can break on: shape, dimension agreement, and score range.
package catalog

import (
	"errors"
	"fmt"
	"math"
)

// ErrDataUnavailable indicates that the corpus artifacts are missing,
// unreadable, or inconsistent. Once load fails, every subsequent call
// observes this error; the cache never retries.
var ErrDataUnavailable = errors.New("corpus data unavailable")

// Movie is a single catalog entry. Index is the movie's position in the
// catalog, fixed at load time.
type Movie struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

// Catalog is the immutable ordered list of movies.
// The index of the i-th movie equals i.
type Catalog struct {
	movies []Movie
}

// NewCatalog builds a catalog from titles in artifact row order.
func NewCatalog(titles []string) (*Catalog, error) {
	if len(titles) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrDataUnavailable)
	}

	movies := make([]Movie, len(titles))
	for i, title := range titles {
		movies[i] = Movie{Index: i, Title: title}
	}
	return &Catalog{movies: movies}, nil
}

// Len returns the number of movies in the catalog.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Title returns the title of the movie at index i.
// Panics if i is out of range, matching slice semantics.
func (c *Catalog) Title(i int) string {
	return c.movies[i].Title
}

// Movies returns a copy of the catalog entries in order.
func (c *Catalog) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// IndexOf resolves a title to its catalog index using an exact,
// case-sensitive match. Titles are not unique; the FIRST match in catalog
// order wins. This lowest-index resolution is a documented policy, not an
// accident of insertion order.
func (c *Catalog) IndexOf(title string) (int, bool) {
	for i := range c.movies {
		if c.movies[i].Title == title {
			return i, true
		}
	}
	return 0, false
}

// SimilarityMatrix is the immutable square matrix of pairwise similarity
// scores. Entry (i, j) is the similarity between movies i and j in [0, 1].
type SimilarityMatrix struct {
	rows [][]float64
}

// NewSimilarityMatrix validates and wraps raw matrix rows.
// The matrix must be non-empty and square, with every score a finite
// number in [0, 1].
func NewSimilarityMatrix(rows [][]float64) (*SimilarityMatrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: similarity matrix is empty", ErrDataUnavailable)
	}

	dim := len(rows)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: similarity matrix is not square: row %d has %d entries, want %d",
				ErrDataUnavailable, i, len(row), dim)
		}
		for j, score := range row {
			if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 1 {
				return nil, fmt.Errorf("%w: similarity score (%d, %d) = %v outside [0, 1]",
					ErrDataUnavailable, i, j, score)
			}
		}
	}

	return &SimilarityMatrix{rows: rows}, nil
}

// Dim returns the matrix dimension M.
func (m *SimilarityMatrix) Dim() int {
	return len(m.rows)
}

// Score returns the similarity score between movies i and j.
// Panics if either index is out of range, matching slice semantics.
func (m *SimilarityMatrix) Score(i, j int) float64 {
	return m.rows[i][j]
}

// Row returns the similarity scores of movie i against every movie.
// The returned slice is shared; callers must not modify it.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.rows[i]
}

// Corpus pairs a catalog with its similarity matrix.
// A corpus is only ever constructed fully consistent: the matrix dimension
// equals the catalog length.
type Corpus struct {
	catalog *Catalog
	matrix  *SimilarityMatrix
}

// NewCorpus validates dimension agreement and pairs the two stores.
func NewCorpus(c *Catalog, m *SimilarityMatrix) (*Corpus, error) {
	if c.Len() != m.Dim() {
		return nil, fmt.Errorf("%w: similarity matrix dimension %d does not match catalog length %d",
			ErrDataUnavailable, m.Dim(), c.Len())
	}
	return &Corpus{catalog: c, matrix: m}, nil
}

// Catalog returns the catalog store.
func (c *Corpus) Catalog() *Catalog {
	return c.catalog
}

// Similarity returns the similarity store.
func (c *Corpus) Similarity() *SimilarityMatrix {
	return c.matrix
}

// Size returns the number of movies in the corpus.
func (c *Corpus) Size() int {
	return c.catalog.Len()
}
