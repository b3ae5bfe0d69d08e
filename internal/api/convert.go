package api

import (
	"strings"
	"time"

	"popcorn/internal/catalog"
	"popcorn/internal/recommend"
	"popcorn/internal/userstore"
)

// FromMovie converts a catalog movie.
func FromMovie(m *catalog.Movie) Movie {
	if m == nil {
		return Movie{}
	}
	return Movie{
		Title:       m.Title,
		Year:        m.Year,
		Runtime:     m.Runtime,
		Genres:      m.Genres(),
		Director:    m.Director,
		Stars:       m.Stars,
		Overview:    m.Overview,
		Rating:      m.Rating,
		Poster:      m.Poster,
		Certificate: m.Certificate,
		MetaScore:   m.MetaScore,
		Votes:       m.Votes,
	}
}

// FromScored converts ranked items, always returning a non-nil slice.
func FromScored(items []recommend.Scored) []ScoredMovie {
	out := make([]ScoredMovie, 0, len(items))
	for _, item := range items {
		out = append(out, ScoredMovie{Movie: FromMovie(item.Movie), Score: item.Score})
	}
	return out
}

// FromResult converts a similarity result.
func FromResult(res recommend.Result) SimilarResponse {
	resp := SimilarResponse{Found: res.Found, Items: FromScored(res.Items)}
	if res.Seed != nil {
		seed := FromMovie(res.Seed)
		resp.Seed = &seed
	}
	return resp
}

// FromRecommendation converts a personalized recommendation.
func FromRecommendation(userID int64, rec recommend.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		UserID:   userID,
		Strategy: string(rec.Strategy),
		Seeds:    rec.Seeds,
		Items:    FromScored(rec.Items),
	}
}

// FromUser converts a stored user.
func FromUser(u *userstore.User) User {
	if u == nil {
		return User{}
	}
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

// FromWatchHistory converts watch history entries.
func FromWatchHistory(entries []userstore.WatchEntry) []WatchEntry {
	out := make([]WatchEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, WatchEntry{Title: entry.Title, WatchedAt: formatTime(entry.WatchedAt)})
	}
	return out
}

// FromRatings converts rating entries.
func FromRatings(entries []userstore.RatingEntry) []RatingEntry {
	out := make([]RatingEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, RatingEntry{Title: entry.Title, Rating: entry.Rating, RatedAt: formatTime(entry.RatedAt)})
	}
	return out
}

// FromPreferences converts stored preferences.
func FromPreferences(p recommend.Preferences) Preferences {
	out := Preferences{
		MinRating: p.MinRating,
		Genres:    p.Genres,
		Directors: p.Directors,
		Runtime:   string(p.Runtime),
	}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	if out.Directors == nil {
		out.Directors = []string{}
	}
	return out
}

// ToPreferences parses wire preferences, accepting legacy runtime labels.
func ToPreferences(p Preferences) (recommend.Preferences, error) {
	bucket, err := recommend.ParseRuntimeBucket(p.Runtime)
	if err != nil {
		return recommend.Preferences{}, err
	}
	prefs := recommend.Preferences{
		MinRating: p.MinRating,
		Genres:    compact(p.Genres),
		Directors: compact(p.Directors),
		Runtime:   bucket,
	}
	return prefs, prefs.Validate()
}

func compact(values []string) []string {
	var out []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}
