package recommend

import (
	"errors"
	"fmt"
	"strings"

	"popcorn/internal/catalog"
)

// ErrInvalidPreferences marks malformed preference values.
var ErrInvalidPreferences = errors.New("invalid preferences")

// RuntimeBucket classifies runtimes into coarse ranges.
type RuntimeBucket string

const (
	RuntimeAny    RuntimeBucket = ""
	RuntimeShort  RuntimeBucket = "short"
	RuntimeMedium RuntimeBucket = "medium"
	RuntimeLong   RuntimeBucket = "long"
)

const (
	shortRuntimeLimit = 90
	longRuntimeLimit  = 150
)

// ParseRuntimeBucket accepts bucket names ("short", "medium", "long") and the
// display labels used by earlier releases ("Short (<90 min)" and so on).
func ParseRuntimeBucket(value string) (RuntimeBucket, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if head, _, ok := strings.Cut(normalized, " "); ok {
		normalized = head
	}
	switch RuntimeBucket(normalized) {
	case RuntimeAny:
		return RuntimeAny, nil
	case RuntimeShort, RuntimeMedium, RuntimeLong:
		return RuntimeBucket(normalized), nil
	case "any":
		return RuntimeAny, nil
	default:
		return RuntimeAny, fmt.Errorf("%w: unknown runtime bucket %q", ErrInvalidPreferences, value)
	}
}

// Contains reports whether runtime minutes fall within the bucket. The medium
// bucket includes both of its bounds.
func (b RuntimeBucket) Contains(runtime int) bool {
	switch b {
	case RuntimeShort:
		return runtime < shortRuntimeLimit
	case RuntimeMedium:
		return runtime >= shortRuntimeLimit && runtime <= longRuntimeLimit
	case RuntimeLong:
		return runtime > longRuntimeLimit
	default:
		return true
	}
}

// Label returns the human-readable bucket description.
func (b RuntimeBucket) Label() string {
	switch b {
	case RuntimeShort:
		return "Short (<90 min)"
	case RuntimeMedium:
		return "Medium (90-150 min)"
	case RuntimeLong:
		return "Long (>150 min)"
	default:
		return "Any"
	}
}

// UnmarshalText lets stored preferences carry either form of bucket name.
func (b *RuntimeBucket) UnmarshalText(text []byte) error {
	parsed, err := ParseRuntimeBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Preferences are optional constraints on recommended movies. Zero values
// impose no constraint.
type Preferences struct {
	MinRating *float64      `json:"min_rating,omitempty"`
	Genres    []string      `json:"genres,omitempty"`
	Directors []string      `json:"directors,omitempty"`
	Runtime   RuntimeBucket `json:"runtime,omitempty"`
}

// IsZero reports whether no constraint is set.
func (p Preferences) IsZero() bool {
	return p.MinRating == nil && len(p.Genres) == 0 && len(p.Directors) == 0 && p.Runtime == RuntimeAny
}

// Validate checks that the constraints are well formed.
func (p Preferences) Validate() error {
	if p.MinRating != nil && (*p.MinRating < 0 || *p.MinRating > 10) {
		return fmt.Errorf("%w: min rating %.1f outside 0-10", ErrInvalidPreferences, *p.MinRating)
	}
	if _, err := ParseRuntimeBucket(string(p.Runtime)); err != nil {
		return err
	}
	return nil
}

// Matches reports whether a movie satisfies every set constraint.
func (p Preferences) Matches(m *catalog.Movie) bool {
	if m == nil {
		return false
	}
	if p.MinRating != nil && m.Rating < *p.MinRating {
		return false
	}
	if len(p.Genres) > 0 && !anyGenre(m.Genres(), p.Genres) {
		return false
	}
	if len(p.Directors) > 0 && !contains(p.Directors, m.Director) {
		return false
	}
	return p.Runtime.Contains(m.Runtime)
}

// Filter keeps the items whose movies satisfy p, preserving order. An empty
// result is valid and means nothing matched.
func Filter(items []Scored, p Preferences) []Scored {
	if p.IsZero() {
		return items
	}
	out := make([]Scored, 0, len(items))
	for _, item := range items {
		if p.Matches(item.Movie) {
			out = append(out, item)
		}
	}
	return out
}

func anyGenre(have, want []string) bool {
	for _, genre := range have {
		for _, wanted := range want {
			if strings.EqualFold(genre, strings.TrimSpace(wanted)) {
				return true
			}
		}
	}
	return false
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
