package recommend_test

import (
	"strings"
	"testing"

	"popcorn/internal/catalog"
	"popcorn/internal/recommend"
)

func movie(title string, year, runtime int, genre, director string, rating float64, overview string) catalog.Movie {
	m := catalog.Movie{
		Title:    title,
		Year:     year,
		Runtime:  runtime,
		Genre:    genre,
		Director: director,
		Rating:   rating,
		Overview: overview,
	}
	m.Content = strings.Join([]string{title, overview, director, genre}, " ")
	return m
}

func scenarioMovies() []catalog.Movie {
	return []catalog.Movie{
		movie("Inception", 2010, 148, "Action, Sci-Fi", "Christopher Nolan", 8.8,
			"A thief who steals corporate secrets through dream-sharing technology plants an idea."),
		movie("Interstellar", 2014, 169, "Adventure, Sci-Fi", "Christopher Nolan", 8.6,
			"Explorers travel through a wormhole in space to ensure humanity's survival."),
		movie("Up", 2009, 96, "Animation, Adventure", "Pete Docter", 8.3,
			"An old widower ties balloons to his house and flies to South America."),
	}
}

func titles(items []recommend.Scored) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Movie.Title
	}
	return out
}

func TestSimilarExcludesSeedAndOrdersByScore(t *testing.T) {
	engine := recommend.NewEngine(scenarioMovies(), recommend.Options{})
	result := engine.Similar("Inception", 2)
	if !result.Found || result.Seed == nil || result.Seed.Title != "Inception" {
		t.Fatalf("expected Inception seed, got %+v", result)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %v", titles(result.Items))
	}
	for _, item := range result.Items {
		if item.Movie.Title == "Inception" {
			t.Fatal("seed must not be recommended")
		}
	}
	if result.Items[0].Score < result.Items[1].Score {
		t.Fatalf("scores not descending: %v", result.Items)
	}
	model := engine.Model()
	seed, _ := model.Index("Inception")
	for _, item := range result.Items {
		idx, _ := model.Index(item.Movie.Title)
		if item.Score != model.Score(seed, idx) {
			t.Fatalf("score for %s = %v, want %v", item.Movie.Title, item.Score, model.Score(seed, idx))
		}
	}
	// Interstellar shares the director and a genre; Up shares nothing.
	if result.Items[0].Movie.Title != "Interstellar" {
		t.Fatalf("expected Interstellar first, got %v", titles(result.Items))
	}
}

func TestSimilarUnknownTitle(t *testing.T) {
	engine := recommend.NewEngine(scenarioMovies(), recommend.Options{})
	result := engine.Similar("Nope", 5)
	if result.Found || result.Seed != nil || len(result.Items) != 0 {
		t.Fatalf("expected not-found result, got %+v", result)
	}
}

func TestSimilarCounts(t *testing.T) {
	engine := recommend.NewEngine(scenarioMovies(), recommend.Options{})
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero", 0, 0},
		{"negative", -3, 0},
		{"one", 1, 1},
		{"more than catalog", 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Similar("Up", tt.n)
			if !result.Found {
				t.Fatal("expected seed found")
			}
			if len(result.Items) != tt.want {
				t.Fatalf("got %d items, want %d", len(result.Items), tt.want)
			}
		})
	}
}

func TestSimilarTiesKeepCatalogOrder(t *testing.T) {
	movies := []catalog.Movie{
		{Title: "Seed", Content: "alpha"},
		{Title: "B", Content: "zulu"},
		{Title: "C", Content: "yankee"},
		{Title: "D", Content: "alpha beta"},
		{Title: "E", Content: "xray"},
	}
	engine := recommend.NewEngine(movies, recommend.Options{})
	got := strings.Join(titles(engine.Similar("Seed", 4).Items), ",")
	if got != "D,B,C,E" {
		t.Fatalf("order = %s, want D,B,C,E", got)
	}
}

func TestSimilarResultsNonIncreasing(t *testing.T) {
	movies := append(scenarioMovies(),
		movie("The Dark Knight", 2008, 152, "Action, Crime, Drama", "Christopher Nolan", 9.0,
			"Batman faces the Joker, a criminal mastermind who wants chaos in Gotham."),
		movie("Toy Story", 1995, 81, "Animation, Adventure, Comedy", "John Lasseter", 8.3,
			"A cowboy doll is threatened by a new spaceman action figure."),
	)
	engine := recommend.NewEngine(movies, recommend.Options{})
	for _, m := range movies {
		items := engine.Similar(m.Title, len(movies)).Items
		if len(items) != len(movies)-1 {
			t.Fatalf("%s: expected %d items, got %d", m.Title, len(movies)-1, len(items))
		}
		for i := 1; i < len(items); i++ {
			if items[i].Score > items[i-1].Score {
				t.Fatalf("%s: scores increase at %d: %v", m.Title, i, titles(items))
			}
		}
	}
}

func TestPopularOrdersByRating(t *testing.T) {
	engine := recommend.NewEngine(scenarioMovies(), recommend.Options{})
	if got := strings.Join(titles(engine.Popular()), ","); got != "Inception,Interstellar,Up" {
		t.Fatalf("popular = %s", got)
	}
	if m, ok := engine.Movie("Up"); !ok || m.Runtime != 96 {
		t.Fatalf("Movie(Up) = %+v, %v", m, ok)
	}
	if engine.Len() != 3 {
		t.Fatalf("Len = %d", engine.Len())
	}
}

func TestRefineNarrowsResult(t *testing.T) {
	engine := recommend.NewEngine(scenarioMovies(), recommend.Options{})
	result := engine.Similar("Inception", 5)

	refined := result.Refine(recommend.Refinement{MaxRuntime: 150})
	if got := strings.Join(titles(refined.Items), ","); got != "Up" {
		t.Fatalf("refined = %s, want Up", got)
	}
	if len(result.Items) != 2 {
		t.Fatal("Refine must not modify the original result")
	}
	if got := result.Refine(recommend.Refinement{MinYear: 2012, MinRating: 8.5}); len(got.Items) != 1 || got.Items[0].Movie.Title != "Interstellar" {
		t.Fatalf("unexpected refinement: %v", titles(got.Items))
	}
	if got := result.Refine(recommend.Refinement{}); len(got.Items) != 2 {
		t.Fatal("zero refinement should keep all items")
	}
}
