package textutil

import (
	"math"
	"sort"
)

// Vector is a sparse term-weight vector. Indices are ascending vocabulary
// positions; Weights holds the matching values.
type Vector struct {
	Indices []int
	Weights []float64
}

// IsZero reports whether the vector has no non-zero weights.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two vectors.
func (v Vector) Dot(other Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			dot += v.Weights[i] * other.Weights[j]
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// Vectorizer holds a fitted vocabulary and its inverse document frequencies.
// It is immutable after Fit and safe for concurrent use.
type Vectorizer struct {
	vocabulary []string
	index      map[string]int
	idf        []float64
}

// Fit builds the vocabulary and IDF weights from a corpus of documents.
func Fit(docs []string) *Vectorizer {
	termsPerDoc := make([][]string, len(docs))
	docFreq := make(map[string]int)
	for i, doc := range docs {
		terms := Terms(doc)
		termsPerDoc[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			docFreq[term]++
		}
	}
	return newVectorizer(docFreq, len(docs))
}

// FitTransform fits the corpus and returns one vector per document, in order.
func FitTransform(docs []string) (*Vectorizer, []Vector) {
	vz := Fit(docs)
	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vectors[i] = vz.Transform(doc)
	}
	return vz, vectors
}

func newVectorizer(docFreq map[string]int, docCount int) *Vectorizer {
	vocabulary := make([]string, 0, len(docFreq))
	for term := range docFreq {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	index := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(docCount)
	for i, term := range vocabulary {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return &Vectorizer{vocabulary: vocabulary, index: index, idf: idf}
}

// Transform converts a document into an L2-normalized TF-IDF vector. Terms
// outside the fitted vocabulary are ignored; a document with no known terms
// yields the zero vector.
func (vz *Vectorizer) Transform(doc string) Vector {
	counts := make(map[int]float64)
	for _, term := range Terms(doc) {
		if idx, ok := vz.index[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	weights := make([]float64, len(indices))
	var sum float64
	for i, idx := range indices {
		w := counts[idx] * vz.idf[idx]
		weights[i] = w
		sum += w * w
	}
	norm := math.Sqrt(sum)
	for i := range weights {
		weights[i] /= norm
	}
	return Vector{Indices: indices, Weights: weights}
}

// VocabularySize returns the number of distinct terms seen during Fit.
func (vz *Vectorizer) VocabularySize() int {
	return len(vz.vocabulary)
}

// IDF returns the inverse document frequency of a folded term.
func (vz *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := vz.index[term]
	if !ok {
		return 0, false
	}
	return vz.idf[idx], true
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 if either vector is zero.
func CosineSimilarity(a, b Vector) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}
