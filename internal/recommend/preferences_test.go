package recommend_test

import (
	"strings"
	"testing"

	"popcorn/internal/catalog"
	"popcorn/internal/recommend"
)

func scored(movies ...catalog.Movie) []recommend.Scored {
	out := make([]recommend.Scored, len(movies))
	for i := range movies {
		out[i] = recommend.Scored{Movie: &movies[i]}
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }

func TestFilterWithoutConstraintsReturnsInput(t *testing.T) {
	items := scored(scenarioMovies()...)
	got := recommend.Filter(items, recommend.Preferences{})
	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	for i := range items {
		if got[i] != items[i] {
			t.Fatalf("item %d changed", i)
		}
	}
}

func TestFilterMinRatingWithNoMatches(t *testing.T) {
	got := recommend.Filter(scored(scenarioMovies()...), recommend.Preferences{MinRating: floatPtr(9.0)})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}

func TestFilterMediumBucketBounds(t *testing.T) {
	items := scored(
		catalog.Movie{Title: "89", Runtime: 89},
		catalog.Movie{Title: "90", Runtime: 90},
		catalog.Movie{Title: "150", Runtime: 150},
		catalog.Movie{Title: "151", Runtime: 151},
	)
	tests := []struct {
		bucket recommend.RuntimeBucket
		want   string
	}{
		{recommend.RuntimeShort, "89"},
		{recommend.RuntimeMedium, "90,150"},
		{recommend.RuntimeLong, "151"},
		{recommend.RuntimeAny, "89,90,150,151"},
	}
	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got := strings.Join(titles(recommend.Filter(items, recommend.Preferences{Runtime: tt.bucket})), ",")
			if got != tt.want {
				t.Fatalf("bucket %q kept %s, want %s", tt.bucket, got, tt.want)
			}
		})
	}
}

func TestFilterCombinesConstraints(t *testing.T) {
	items := scored(scenarioMovies()...)
	tests := []struct {
		name  string
		prefs recommend.Preferences
		want  string
	}{
		{"genre any match", recommend.Preferences{Genres: []string{"Animation", "Western"}}, "Up"},
		{"genre case insensitive", recommend.Preferences{Genres: []string{"sci-fi"}}, "Inception,Interstellar"},
		{"director exact", recommend.Preferences{Directors: []string{"Christopher Nolan"}}, "Inception,Interstellar"},
		{"director partial does not match", recommend.Preferences{Directors: []string{"Nolan"}}, ""},
		{"rating and runtime", recommend.Preferences{MinRating: floatPtr(8.5), Runtime: recommend.RuntimeLong}, "Interstellar"},
		{"all constraints", recommend.Preferences{
			MinRating: floatPtr(8.0),
			Genres:    []string{"Adventure"},
			Directors: []string{"Pete Docter"},
			Runtime:   recommend.RuntimeMedium,
		}, "Up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(titles(recommend.Filter(items, tt.prefs)), ",")
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRuntimeBucket(t *testing.T) {
	tests := []struct {
		input   string
		want    recommend.RuntimeBucket
		wantErr bool
	}{
		{"", recommend.RuntimeAny, false},
		{"any", recommend.RuntimeAny, false},
		{"short", recommend.RuntimeShort, false},
		{"MEDIUM", recommend.RuntimeMedium, false},
		{"Short (<90 min)", recommend.RuntimeShort, false},
		{"Medium (90-150 min)", recommend.RuntimeMedium, false},
		{"Long (>150 min)", recommend.RuntimeLong, false},
		{"epic", recommend.RuntimeAny, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := recommend.ParseRuntimeBucket(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}

	var bucket recommend.RuntimeBucket
	if err := bucket.UnmarshalText([]byte("Long (>150 min)")); err != nil || bucket != recommend.RuntimeLong {
		t.Fatalf("UnmarshalText = %q, %v", bucket, err)
	}
	if recommend.RuntimeMedium.Label() != "Medium (90-150 min)" {
		t.Fatalf("unexpected label %q", recommend.RuntimeMedium.Label())
	}
}

func TestPreferencesValidate(t *testing.T) {
	if err := (recommend.Preferences{MinRating: floatPtr(11)}).Validate(); err == nil {
		t.Fatal("expected error for rating above 10")
	}
	if err := (recommend.Preferences{Runtime: "epic"}).Validate(); err == nil {
		t.Fatal("expected error for unknown bucket")
	}
	if err := (recommend.Preferences{MinRating: floatPtr(7.5), Runtime: recommend.RuntimeShort}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
