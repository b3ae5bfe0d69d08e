package recommend

import "sort"

// Strategy names the path ForUser took.
type Strategy string

const (
	StrategyPopular Strategy = "popular"
	StrategySimilar Strategy = "similar"
)

// Profile is the per-user input to ForUser.
type Profile struct {
	Watched     []string
	Ratings     map[string]int
	Preferences Preferences
}

// Recommendation is the outcome of ForUser. Seeds lists the rated titles that
// drove the similar strategy.
type Recommendation struct {
	Items    []Scored
	Strategy Strategy
	Seeds    []string
}

// ForUser recommends up to n movies the user has not watched. Users without
// ratings get the highest-rated catalog entries; otherwise the top-rated
// titles seed similarity queries. Preferences filter both paths.
func (e *Engine) ForUser(p Profile, n int) Recommendation {
	watched := make(map[string]struct{}, len(p.Watched))
	for _, title := range p.Watched {
		watched[title] = struct{}{}
	}

	if len(p.Ratings) == 0 {
		rec := Recommendation{Strategy: StrategyPopular}
		if n <= 0 {
			return rec
		}
		items := Filter(excludeWatched(e.Popular(), watched), p.Preferences)
		rec.Items = truncate(items, n)
		return rec
	}

	seeds := TopRated(p.Ratings, e.seedCount)
	rec := Recommendation{Strategy: StrategySimilar, Seeds: seeds}
	if n <= 0 {
		return rec
	}

	var pooled []Scored
	seen := make(map[string]struct{})
	for _, seed := range seeds {
		for _, item := range e.Similar(seed, e.perSeedCount).Items {
			if _, dup := seen[item.Movie.Title]; dup {
				continue
			}
			seen[item.Movie.Title] = struct{}{}
			pooled = append(pooled, item)
		}
	}
	items := Filter(excludeWatched(pooled, watched), p.Preferences)
	rec.Items = truncate(items, n)
	return rec
}

// TopRated returns up to k titles with the highest ratings. Equal ratings are
// ordered by title.
func TopRated(ratings map[string]int, k int) []string {
	titles := make([]string, 0, len(ratings))
	for title := range ratings {
		titles = append(titles, title)
	}
	sort.Slice(titles, func(a, b int) bool {
		ra, rb := ratings[titles[a]], ratings[titles[b]]
		if ra != rb {
			return ra > rb
		}
		return titles[a] < titles[b]
	})
	if k < len(titles) {
		titles = titles[:k]
	}
	return titles
}

func excludeWatched(items []Scored, watched map[string]struct{}) []Scored {
	if len(watched) == 0 {
		return items
	}
	out := make([]Scored, 0, len(items))
	for _, item := range items {
		if _, ok := watched[item.Movie.Title]; !ok {
			out = append(out, item)
		}
	}
	return out
}

func truncate(items []Scored, n int) []Scored {
	if n < len(items) {
		return items[:n]
	}
	return items
}
