package userstore

import (
	"context"
	"fmt"

	"popcorn/internal/recommend"
)

// Stats summarizes a user's activity.
type Stats struct {
	Watched       int
	Rated         int
	AverageRating float64
}

// Profile gathers the user's watch history, ratings, and preferences.
func (s *Store) Profile(ctx context.Context, userID int64) (recommend.Profile, error) {
	history, err := s.WatchHistory(ctx, userID)
	if err != nil {
		return recommend.Profile{}, err
	}
	ratings, err := s.Ratings(ctx, userID)
	if err != nil {
		return recommend.Profile{}, err
	}
	prefs, err := s.Preferences(ctx, userID)
	if err != nil {
		return recommend.Profile{}, err
	}

	profile := recommend.Profile{
		Watched:     make([]string, 0, len(history)),
		Ratings:     make(map[string]int, len(ratings)),
		Preferences: prefs,
	}
	for _, entry := range history {
		profile.Watched = append(profile.Watched, entry.Title)
	}
	for _, entry := range ratings {
		profile.Ratings[entry.Title] = entry.Rating
	}
	return profile, nil
}

// Stats counts watched and rated titles and averages the ratings.
func (s *Store) Stats(ctx context.Context, userID int64) (Stats, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return Stats{}, err
	}
	var stats Stats
	err := s.db.QueryRowContext(ensureContext(ctx), `
		SELECT
			(SELECT COUNT(1) FROM watch_history WHERE user_id = ?),
			(SELECT COUNT(1) FROM ratings WHERE user_id = ?),
			COALESCE((SELECT AVG(rating) FROM ratings WHERE user_id = ?), 0)`,
		userID, userID, userID,
	).Scan(&stats.Watched, &stats.Rated, &stats.AverageRating)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}
