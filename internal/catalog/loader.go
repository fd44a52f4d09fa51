// Movie Recommender - Similarity-Based Movie Recommendation Service
// Copyright 2026 V19Amit
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/V19Amit/movie

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// LoadCatalog reads the catalog artifact: a CSV file whose header row
// contains a "title" column (matched case-insensitively, extra columns
// ignored). Row order defines the movie index.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open catalog artifact %s: %v", ErrDataUnavailable, path, err)
	}
	defer f.Close()

	return readCatalog(f, path)
}

// readCatalog parses catalog CSV content.
func readCatalog(r io.Reader, path string) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // columns beyond title may vary per row

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog header %s: %v", ErrDataUnavailable, path, err)
	}

	titleCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "title") {
			titleCol = i
			break
		}
	}
	if titleCol < 0 {
		return nil, fmt.Errorf("%w: catalog artifact %s has no title column", ErrDataUnavailable, path)
	}

	var titles []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read catalog row %d in %s: %v",
				ErrDataUnavailable, len(titles)+1, path, err)
		}
		if titleCol >= len(record) {
			return nil, fmt.Errorf("%w: catalog row %d in %s has no title field",
				ErrDataUnavailable, len(titles)+1, path)
		}
		titles = append(titles, record[titleCol])
	}

	return NewCatalog(titles)
}

// LoadSimilarity reads the similarity artifact: a JSON MxM array of arrays
// of scores aligned to the catalog row order.
func LoadSimilarity(path string) (*SimilarityMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read similarity artifact %s: %v", ErrDataUnavailable, path, err)
	}

	var rows [][]float64
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: parse similarity artifact %s: %v", ErrDataUnavailable, path, err)
	}

	return NewSimilarityMatrix(rows)
}

// LoadCorpus loads both artifacts and validates their dimensions agree.
// Either the whole corpus loads consistently or nothing is returned.
func LoadCorpus(catalogPath, similarityPath string) (*Corpus, error) {
	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	sim, err := LoadSimilarity(similarityPath)
	if err != nil {
		return nil, err
	}

	return NewCorpus(cat, sim)
}
