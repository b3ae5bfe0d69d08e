package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"popcorn/internal/recommend"
)

// Preferences returns the stored preferences. Users who never saved any get
// the zero value.
func (s *Store) Preferences(ctx context.Context, userID int64) (recommend.Preferences, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT preferences_json FROM users WHERE id = ?", userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return recommend.Preferences{}, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}
	if err != nil {
		return recommend.Preferences{}, fmt.Errorf("query preferences: %w", err)
	}
	return decodePreferences(raw)
}

// SetPreferences replaces the user's preferences.
func (s *Store) SetPreferences(ctx context.Context, userID int64, prefs recommend.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	res, err := s.execWithRetry(ctx, "UPDATE users SET preferences_json = ? WHERE id = ?", string(payload), userID)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}
	return nil
}

func decodePreferences(raw sql.NullString) (recommend.Preferences, error) {
	var prefs recommend.Preferences
	if !raw.Valid || raw.String == "" {
		return prefs, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &prefs); err != nil {
		return recommend.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, nil
}
