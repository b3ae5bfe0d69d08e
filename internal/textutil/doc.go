// Package textutil turns free text into weighted term vectors and compares
// them.
//
// The primary use cases are:
//   - Tokenizing movie content blobs (case and diacritic folding, English
//     stop-word removal)
//   - Fitting a TF-IDF vectorizer over a corpus and transforming documents
//     into sparse, L2-normalized vectors
//   - Computing cosine similarity between those vectors
//
// Weights follow the smoothed TF-IDF scheme: raw term counts multiplied by
// ln((1+N)/(1+df)) + 1, then normalized to unit length. The vocabulary is
// sorted so fitting the same corpus always yields the same vectors.
package textutil
