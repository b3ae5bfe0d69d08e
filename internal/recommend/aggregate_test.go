package recommend_test

import (
	"slices"
	"strings"
	"testing"

	"popcorn/internal/catalog"
	"popcorn/internal/recommend"
)

func aggregateMovies() []catalog.Movie {
	return []catalog.Movie{
		{Title: "Heist Dream", Runtime: 120, Genre: "Thriller", Rating: 8.0, Content: "dream heist thief"},
		{Title: "Dream Thief", Runtime: 100, Genre: "Thriller", Rating: 7.0, Content: "dream thief secrets"},
		{Title: "Space Trip", Runtime: 170, Genre: "Sci-Fi", Rating: 8.5, Content: "space wormhole explorers"},
		{Title: "Space Colony", Runtime: 95, Genre: "Sci-Fi", Rating: 6.5, Content: "space colony explorers"},
		{Title: "Balloon House", Runtime: 96, Genre: "Animation", Rating: 8.3, Content: "balloon house old man"},
		{Title: "Flying House", Runtime: 85, Genre: "Animation", Rating: 7.2, Content: "balloon flying house"},
	}
}

func TestForUserColdStartReturnsTopRated(t *testing.T) {
	engine := recommend.NewEngine(scenarioMovies(), recommend.Options{})
	rec := engine.ForUser(recommend.Profile{}, 2)
	if rec.Strategy != recommend.StrategyPopular {
		t.Fatalf("strategy = %s", rec.Strategy)
	}
	if got := strings.Join(titles(rec.Items), ","); got != "Inception,Interstellar" {
		t.Fatalf("cold start = %s", got)
	}
}

func TestForUserColdStartHonorsHistoryAndPreferences(t *testing.T) {
	engine := recommend.NewEngine(aggregateMovies(), recommend.Options{})
	rec := engine.ForUser(recommend.Profile{
		Watched:     []string{"Space Trip"},
		Preferences: recommend.Preferences{Runtime: recommend.RuntimeMedium},
	}, 3)
	if got := strings.Join(titles(rec.Items), ","); got != "Balloon House,Heist Dream,Dream Thief" {
		t.Fatalf("cold start = %s", got)
	}
}

func TestForUserSeedsFromTopRatings(t *testing.T) {
	engine := recommend.NewEngine(aggregateMovies(), recommend.Options{SeedCount: 2})
	rec := engine.ForUser(recommend.Profile{
		Watched: []string{"Dream Thief"},
		Ratings: map[string]int{"Space Trip": 9, "Heist Dream": 9, "Balloon House": 2},
	}, 2)
	if rec.Strategy != recommend.StrategySimilar {
		t.Fatalf("strategy = %s", rec.Strategy)
	}
	if got := strings.Join(rec.Seeds, ","); got != "Heist Dream,Space Trip" {
		t.Fatalf("seeds = %s", got)
	}
	if got := strings.Join(titles(rec.Items), ","); got != "Space Trip,Space Colony" {
		t.Fatalf("items = %s", got)
	}
}

func TestForUserUnknownSeedsContributeNothing(t *testing.T) {
	engine := recommend.NewEngine(aggregateMovies(), recommend.Options{})
	rec := engine.ForUser(recommend.Profile{Ratings: map[string]int{"Not In Catalog": 10}}, 5)
	if rec.Strategy != recommend.StrategySimilar || len(rec.Items) != 0 {
		t.Fatalf("expected empty similar result, got %+v", rec)
	}
}

func TestForUserDeduplicatesAcrossSeeds(t *testing.T) {
	engine := recommend.NewEngine(aggregateMovies(), recommend.Options{})
	rec := engine.ForUser(recommend.Profile{
		Ratings: map[string]int{"Heist Dream": 8, "Dream Thief": 8, "Space Trip": 8},
	}, 20)
	seen := make(map[string]bool)
	for _, title := range titles(rec.Items) {
		if seen[title] {
			t.Fatalf("duplicate title %s in %v", title, titles(rec.Items))
		}
		seen[title] = true
	}
	if len(rec.Items) == 0 || len(rec.Items) > 9 {
		t.Fatalf("unexpected item count %d", len(rec.Items))
	}
}

func TestForUserNeverReturnsWatched(t *testing.T) {
	movies := aggregateMovies()
	engine := recommend.NewEngine(movies, recommend.Options{})
	ratingSets := []map[string]int{
		nil,
		{"Heist Dream": 10},
		{"Space Trip": 7, "Flying House": 7, "Dream Thief": 3},
		{"Balloon House": 5, "Space Colony": 9, "Heist Dream": 1, "Space Trip": 4},
	}
	for mask := 0; mask < 1<<len(movies); mask++ {
		var watched []string
		for i, m := range movies {
			if mask&(1<<i) != 0 {
				watched = append(watched, m.Title)
			}
		}
		for _, ratings := range ratingSets {
			rec := engine.ForUser(recommend.Profile{Watched: watched, Ratings: ratings}, len(movies))
			for _, title := range titles(rec.Items) {
				if slices.Contains(watched, title) {
					t.Fatalf("watched %v, ratings %v: returned watched title %s", watched, ratings, title)
				}
			}
		}
	}
}

func TestForUserNonPositiveCount(t *testing.T) {
	engine := recommend.NewEngine(aggregateMovies(), recommend.Options{})
	if rec := engine.ForUser(recommend.Profile{}, 0); len(rec.Items) != 0 {
		t.Fatalf("expected no items, got %v", titles(rec.Items))
	}
	rec := engine.ForUser(recommend.Profile{Ratings: map[string]int{"Space Trip": 5}}, -1)
	if len(rec.Items) != 0 || len(rec.Seeds) != 1 {
		t.Fatalf("unexpected recommendation %+v", rec)
	}
}

func TestTopRatedBreaksTiesByTitle(t *testing.T) {
	got := recommend.TopRated(map[string]int{"b": 7, "a": 7, "c": 9, "d": 1}, 3)
	if strings.Join(got, ",") != "c,a,b" {
		t.Fatalf("TopRated = %v", got)
	}
}
