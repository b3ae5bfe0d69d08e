package similarity_test

import (
	"math"
	"testing"

	"popcorn/internal/catalog"
	"popcorn/internal/similarity"
)

func movies(contents ...string) []catalog.Movie {
	out := make([]catalog.Movie, len(contents))
	for i, content := range contents {
		out[i] = catalog.Movie{Title: string(rune('A' + i)), Content: content}
	}
	return out
}

func TestBuildDiagonal(t *testing.T) {
	model := similarity.Build(movies(
		"dream heist thief secrets",
		"the of and",
		"wormhole space explorers",
	))
	if model.Size() != 3 {
		t.Fatalf("size = %d, want 3", model.Size())
	}
	if got := model.Score(0, 0); got != 1 {
		t.Fatalf("self similarity = %v, want exactly 1", got)
	}
	if got := model.Score(1, 1); got != 0 {
		t.Fatalf("stop-word-only self similarity = %v, want 0", got)
	}
	if model.HasContent(1) || !model.HasContent(2) {
		t.Fatal("unexpected HasContent result")
	}
	for j := 0; j < 3; j++ {
		if model.Score(1, j) != 0 {
			t.Fatalf("zero row should score 0 against %d", j)
		}
	}
}

func TestBuildIsSymmetric(t *testing.T) {
	model := similarity.Build(movies(
		"dream heist thief secrets nolan",
		"wormhole space explorers nolan",
		"balloons house adventure old man",
		"space adventure explorers dream",
	))
	for i := 0; i < model.Size(); i++ {
		for j := 0; j < model.Size(); j++ {
			if model.Score(i, j) != model.Score(j, i) {
				t.Fatalf("score(%d,%d)=%v != score(%d,%d)=%v", i, j, model.Score(i, j), j, i, model.Score(j, i))
			}
			if s := model.Score(i, j); s < 0 || s > 1+1e-12 {
				t.Fatalf("score(%d,%d)=%v out of range", i, j, s)
			}
		}
	}
	if model.Score(1, 3) <= model.Score(0, 2) {
		t.Fatalf("expected shared-term pair to outscore disjoint pair")
	}
	if math.Abs(model.Score(0, 2)) != 0 {
		t.Fatalf("disjoint pair should score 0, got %v", model.Score(0, 2))
	}
}

func TestBuildIndexAndRow(t *testing.T) {
	model := similarity.Build(movies("alpha beta", "beta gamma"))
	idx, ok := model.Index("B")
	if !ok || idx != 1 {
		t.Fatalf("Index(B) = %d,%v", idx, ok)
	}
	if _, ok := model.Index("Z"); ok {
		t.Fatal("unexpected index for unknown title")
	}
	row := model.Row(0)
	if len(row) != 2 || row[0] != 1 || row[1] != model.Score(0, 1) {
		t.Fatalf("unexpected row: %v", row)
	}
	if model.Row(5) != nil || model.Score(-1, 0) != 0 {
		t.Fatal("out of range access should be empty")
	}
	if model.VocabularySize() != 3 {
		t.Fatalf("vocabulary = %d, want 3", model.VocabularySize())
	}
}

func TestBuildEmptyCatalog(t *testing.T) {
	model := similarity.Build(nil)
	if model.Size() != 0 || model.VocabularySize() != 0 {
		t.Fatalf("unexpected empty model: size=%d vocab=%d", model.Size(), model.VocabularySize())
	}
}
