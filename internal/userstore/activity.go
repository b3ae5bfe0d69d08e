package userstore

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// WatchEntry is one watched title.
type WatchEntry struct {
	Title     string
	WatchedAt time.Time
}

// RatingEntry is one rated title.
type RatingEntry struct {
	Title   string
	Rating  int
	RatedAt time.Time
}

// AddToWatchHistory records a watched title. Adding a title twice keeps the
// first entry.
func (s *Store) AddToWatchHistory(ctx context.Context, userID int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidTitle
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.execWithRetry(ctx,
		"INSERT OR IGNORE INTO watch_history (user_id, title, watched_at) VALUES (?, ?, ?)",
		userID, title, s.timestamp(),
	); err != nil {
		return fmt.Errorf("add to watch history: %w", err)
	}
	return nil
}

// WatchHistory returns watched titles, most recent first.
func (s *Store) WatchHistory(ctx context.Context, userID int64) ([]WatchEntry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT title, watched_at FROM watch_history WHERE user_id = ? ORDER BY watched_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query watch history: %w", err)
	}
	defer rows.Close()

	var entries []WatchEntry
	for rows.Next() {
		var (
			entry   WatchEntry
			watched string
		)
		if err := rows.Scan(&entry.Title, &watched); err != nil {
			return nil, fmt.Errorf("scan watch history: %w", err)
		}
		entry.WatchedAt = parseTimestamp(watched)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch history: %w", err)
	}
	return entries, nil
}

// ClearWatchHistory removes every watched title for the user.
func (s *Store) ClearWatchHistory(ctx context.Context, userID int64) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.execWithRetry(ctx, "DELETE FROM watch_history WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clear watch history: %w", err)
	}
	return nil
}

// UpsertRating stores a 1-10 rating, replacing any previous rating of the title.
func (s *Store) UpsertRating(ctx context.Context, userID int64, title string, rating int) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrInvalidTitle
	}
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.execWithRetry(ctx, `
		INSERT INTO ratings (user_id, title, rating, rated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, title) DO UPDATE SET rating = excluded.rating, rated_at = excluded.rated_at`,
		userID, title, rating, s.timestamp(),
	); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// Ratings returns the user's ratings, most recent first.
func (s *Store) Ratings(ctx context.Context, userID int64) ([]RatingEntry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT title, rating, rated_at FROM ratings WHERE user_id = ? ORDER BY rated_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var entries []RatingEntry
	for rows.Next() {
		var (
			entry RatingEntry
			rated string
		)
		if err := rows.Scan(&entry.Title, &entry.Rating, &rated); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		entry.RatedAt = parseTimestamp(rated)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return entries, nil
}

// ClearRatings removes every rating for the user.
func (s *Store) ClearRatings(ctx context.Context, userID int64) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	if _, err := s.execWithRetry(ctx, "DELETE FROM ratings WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clear ratings: %w", err)
	}
	return nil
}
