package catalog

import (
	"sort"
	"strings"
)

// Movie is one catalog entry. Movies are immutable after load.
type Movie struct {
	Title       string
	Year        int
	Runtime     int
	Genre       string
	Director    string
	Stars       string
	Overview    string
	Rating      float64
	Poster      string
	Certificate string
	MetaScore   string
	Votes       string
	// Content is the text blob the similarity model vectorizes.
	Content string
}

// Genres splits the comma-separated genre list into trimmed labels.
func (m Movie) Genres() []string {
	return splitList(m.Genre)
}

// Corpus is the ordered result of a catalog load.
type Corpus struct {
	Movies  []Movie
	Dropped []*RecordError
}

// Len returns the number of loaded movies.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Movies)
}

// Genres lists the distinct genre labels in the catalog, sorted.
func (c *Corpus) Genres() []string {
	seen := make(map[string]struct{})
	for _, movie := range c.Movies {
		for _, genre := range movie.Genres() {
			seen[genre] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Directors lists the distinct directors in the catalog, sorted.
func (c *Corpus) Directors() []string {
	seen := make(map[string]struct{})
	for _, movie := range c.Movies {
		if movie.Director != "" {
			seen[movie.Director] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
