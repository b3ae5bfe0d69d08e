// Package similarity builds the pairwise content similarity matrix for the
// catalog.
package similarity

import (
	"popcorn/internal/catalog"
	"popcorn/internal/textutil"
)

// Model is the immutable similarity artifact built once per catalog. It is
// safe for concurrent reads.
type Model struct {
	size       int
	scores     []float64
	index      map[string]int
	vectorizer *textutil.Vectorizer
	vectors    []textutil.Vector
}

// Build vectorizes every movie's content blob and computes the cosine
// similarity of each pair. Rows are assumed to carry unique titles.
func Build(movies []catalog.Movie) *Model {
	docs := make([]string, len(movies))
	index := make(map[string]int, len(movies))
	for i, movie := range movies {
		docs[i] = movie.Content
		if _, ok := index[movie.Title]; !ok {
			index[movie.Title] = i
		}
	}

	vectorizer, vectors := textutil.FitTransform(docs)
	n := len(movies)
	scores := make([]float64, n*n)
	for i := 0; i < n; i++ {
		if vectors[i].IsZero() {
			continue
		}
		scores[i*n+i] = 1
		for j := i + 1; j < n; j++ {
			score := textutil.CosineSimilarity(vectors[i], vectors[j])
			scores[i*n+j] = score
			scores[j*n+i] = score
		}
	}

	return &Model{
		size:       n,
		scores:     scores,
		index:      index,
		vectorizer: vectorizer,
		vectors:    vectors,
	}
}

// Size returns the number of rows in the matrix.
func (m *Model) Size() int {
	return m.size
}

// Score returns the similarity between rows i and j. Out-of-range indices
// score 0.
func (m *Model) Score(i, j int) float64 {
	if i < 0 || j < 0 || i >= m.size || j >= m.size {
		return 0
	}
	return m.scores[i*m.size+j]
}

// Row returns the similarities of row i to every row. The slice aliases the
// model and must not be modified.
func (m *Model) Row(i int) []float64 {
	if i < 0 || i >= m.size {
		return nil
	}
	return m.scores[i*m.size : (i+1)*m.size : (i+1)*m.size]
}

// Index returns the row for a title.
func (m *Model) Index(title string) (int, bool) {
	idx, ok := m.index[title]
	return idx, ok
}

// VocabularySize reports the number of distinct terms in the fitted vocabulary.
func (m *Model) VocabularySize() int {
	return m.vectorizer.VocabularySize()
}

// HasContent reports whether row i produced a non-zero vector.
func (m *Model) HasContent(i int) bool {
	if i < 0 || i >= m.size {
		return false
	}
	return !m.vectors[i].IsZero()
}
