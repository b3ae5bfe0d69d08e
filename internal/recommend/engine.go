package recommend

import (
	"sort"

	"popcorn/internal/catalog"
	"popcorn/internal/similarity"
)

const (
	defaultSeedCount    = 3
	defaultPerSeedCount = 3
)

// Options tunes the personalized path of ForUser.
type Options struct {
	// SeedCount is how many of the user's top-rated titles seed recommendations.
	SeedCount int
	// PerSeedCount is how many similar titles each seed contributes.
	PerSeedCount int
}

// Engine serves similarity queries over an immutable catalog.
type Engine struct {
	movies       []catalog.Movie
	model        *similarity.Model
	byRating     []int
	seedCount    int
	perSeedCount int
}

// Scored pairs a movie with its similarity to a seed. Popularity results
// carry a zero score.
type Scored struct {
	Movie *catalog.Movie
	Score float64
}

// Result is the outcome of a similarity query. Found is false when the seed
// title is not in the catalog, which is distinct from a known seed with no
// matching candidates.
type Result struct {
	Seed  *catalog.Movie
	Found bool
	Items []Scored
}

// NewEngine builds the similarity model for movies. The slice must not be
// modified afterwards.
func NewEngine(movies []catalog.Movie, opts Options) *Engine {
	if opts.SeedCount <= 0 {
		opts.SeedCount = defaultSeedCount
	}
	if opts.PerSeedCount <= 0 {
		opts.PerSeedCount = defaultPerSeedCount
	}

	byRating := make([]int, len(movies))
	for i := range byRating {
		byRating[i] = i
	}
	sort.SliceStable(byRating, func(a, b int) bool {
		return movies[byRating[a]].Rating > movies[byRating[b]].Rating
	})

	return &Engine{
		movies:       movies,
		model:        similarity.Build(movies),
		byRating:     byRating,
		seedCount:    opts.SeedCount,
		perSeedCount: opts.PerSeedCount,
	}
}

// Len returns the catalog size.
func (e *Engine) Len() int {
	return len(e.movies)
}

// Model exposes the underlying similarity model.
func (e *Engine) Model() *similarity.Model {
	return e.model
}

// Movies returns the catalog in load order. Callers must not modify it.
func (e *Engine) Movies() []catalog.Movie {
	return e.movies
}

// Movie looks up a catalog entry by exact title.
func (e *Engine) Movie(title string) (*catalog.Movie, bool) {
	idx, ok := e.model.Index(title)
	if !ok {
		return nil, false
	}
	return &e.movies[idx], true
}

// Similar returns up to n movies most similar to title, excluding the title
// itself. Ties keep catalog order. n <= 0 yields no items.
func (e *Engine) Similar(title string, n int) Result {
	idx, ok := e.model.Index(title)
	if !ok {
		return Result{}
	}
	result := Result{Seed: &e.movies[idx], Found: true}
	if n <= 0 {
		return result
	}

	row := e.model.Row(idx)
	candidates := make([]int, 0, len(e.movies)-1)
	for j := range e.movies {
		if j != idx {
			candidates = append(candidates, j)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return row[candidates[a]] > row[candidates[b]]
	})
	if n > len(candidates) {
		n = len(candidates)
	}

	result.Items = make([]Scored, n)
	for i, j := range candidates[:n] {
		result.Items[i] = Scored{Movie: &e.movies[j], Score: row[j]}
	}
	return result
}

// Popular returns the whole catalog ordered by descending rating, ties in
// catalog order.
func (e *Engine) Popular() []Scored {
	out := make([]Scored, len(e.byRating))
	for i, idx := range e.byRating {
		out[i] = Scored{Movie: &e.movies[idx]}
	}
	return out
}
