package recommend

// Refinement narrows a ranked result by inclusive ranges. Zero bounds are
// unset.
type Refinement struct {
	MinYear    int
	MaxYear    int
	MinRuntime int
	MaxRuntime int
	MinRating  float64
	MaxRating  float64
}

// IsZero reports whether no range is set.
func (r Refinement) IsZero() bool {
	return r == Refinement{}
}

func (r Refinement) allows(s Scored) bool {
	m := s.Movie
	switch {
	case r.MinYear > 0 && m.Year < r.MinYear,
		r.MaxYear > 0 && m.Year > r.MaxYear,
		r.MinRuntime > 0 && m.Runtime < r.MinRuntime,
		r.MaxRuntime > 0 && m.Runtime > r.MaxRuntime,
		r.MinRating > 0 && m.Rating < r.MinRating,
		r.MaxRating > 0 && m.Rating > r.MaxRating:
		return false
	}
	return true
}

// Refine returns a copy of the result keeping only items inside r.
func (res Result) Refine(r Refinement) Result {
	if r.IsZero() || len(res.Items) == 0 {
		return res
	}
	items := make([]Scored, 0, len(res.Items))
	for _, item := range res.Items {
		if r.allows(item) {
			items = append(items, item)
		}
	}
	res.Items = items
	return res
}
