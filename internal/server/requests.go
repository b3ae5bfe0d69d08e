package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"popcorn/internal/recommend"
)

const maxBodyBytes = 64 << 10

// createUserRequest is the body of POST /api/users.
type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
}

// watchRequest is the body of POST /api/users/{id}/watched.
type watchRequest struct {
	Title string `json:"title" validate:"required,max=300"`
}

// rateRequest is the body of PUT /api/users/{id}/ratings.
type rateRequest struct {
	Title  string `json:"title" validate:"required,max=300"`
	Rating int    `json:"rating" validate:"min=1,max=10"`
}

// preferencesRequest is the body of PUT /api/users/{id}/preferences.
type preferencesRequest struct {
	MinRating *float64 `json:"minRating" validate:"omitempty,min=0,max=10"`
	Genres    []string `json:"genres" validate:"omitempty,max=50,dive,max=100"`
	Directors []string `json:"directors" validate:"omitempty,max=50,dive,max=200"`
	Runtime   string   `json:"runtime" validate:"omitempty,max=40"`
}

// similarQuery holds the query parameters of GET /api/movies/{title}/similar.
type similarQuery struct {
	N          int     `validate:"min=0"`
	MinYear    int     `validate:"omitempty,min=1800,max=3000"`
	MaxYear    int     `validate:"omitempty,min=1800,max=3000"`
	MinRuntime int     `validate:"omitempty,min=1,max=1000"`
	MaxRuntime int     `validate:"omitempty,min=1,max=1000"`
	MinRating  float64 `validate:"omitempty,min=0,max=10"`
	MaxRating  float64 `validate:"omitempty,min=0,max=10"`
}

func (q similarQuery) refinement() recommend.Refinement {
	return recommend.Refinement{
		MinYear:    q.MinYear,
		MaxYear:    q.MaxYear,
		MinRuntime: q.MinRuntime,
		MaxRuntime: q.MaxRuntime,
		MinRating:  q.MinRating,
		MaxRating:  q.MaxRating,
	}
}

// decodeBody reads a JSON body into dst and validates it.
func (s *Server) decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return s.validate.Struct(dst)
}

type queryParser struct {
	values url.Values
	err    error
}

func (p *queryParser) int(key string, fallback int) int {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" || p.err != nil {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q", key, raw)
		return fallback
	}
	return v
}

func (p *queryParser) float(key string) float64 {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" || p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("invalid %s %q", key, raw)
		return 0
	}
	return v
}

// clampCount applies the configured maximum to requested result sizes.
func (s *Server) clampCount(n int) int {
	if n > s.maxCount {
		return s.maxCount
	}
	return n
}
