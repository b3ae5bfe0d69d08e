package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"popcorn/internal/api"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.svc.Status())
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items := s.svc.Movies(api.MovieFilter{
		Genre:    query.Get("genre"),
		Director: query.Get("director"),
	})
	s.writeJSON(w, r, http.StatusOK, api.MovieListResponse{Items: items})
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	title, ok := s.titleParam(w, r)
	if !ok {
		return
	}
	movie, err := s.svc.Movie(title)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, movie)
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	title, ok := s.titleParam(w, r)
	if !ok {
		return
	}
	parser := queryParser{values: r.URL.Query()}
	q := similarQuery{
		N:          parser.int("n", s.svc.DefaultSimilarCount()),
		MinYear:    parser.int("min_year", 0),
		MaxYear:    parser.int("max_year", 0),
		MinRuntime: parser.int("min_runtime", 0),
		MaxRuntime: parser.int("max_runtime", 0),
		MinRating:  parser.float("min_rating"),
		MaxRating:  parser.float("max_rating"),
	}
	if parser.err != nil {
		s.writeError(w, r, http.StatusBadRequest, parser.err.Error())
		return
	}
	if err := s.validate.Struct(q); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	resp := s.svc.Similar(r.Context(), title, s.clampCount(q.N), q.refinement())
	status := http.StatusOK
	if !resp.Found {
		status = http.StatusNotFound
	}
	s.writeJSON(w, r, status, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if users == nil {
		users = []api.User{}
	}
	s.writeJSON(w, r, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeBodyError(w, r, err)
		return
	}
	user, err := s.svc.CreateUser(r.Context(), req.Username, req.Email)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	user, err := s.svc.GetUser(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteUser(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	parser := queryParser{values: r.URL.Query()}
	n := parser.int("n", s.svc.DefaultCount())
	if parser.err != nil || n < 0 {
		s.writeError(w, r, http.StatusBadRequest, "n must be a non-negative integer")
		return
	}
	resp, err := s.svc.Recommend(r.Context(), id, s.clampCount(n))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleWatchHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	entries, err := s.svc.WatchHistory(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	var req watchRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeBodyError(w, r, err)
		return
	}
	if err := s.svc.Watch(r.Context(), id, req.Title); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearWatchHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.ClearWatchHistory(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	entries, err := s.svc.Ratings(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	var req rateRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeBodyError(w, r, err)
		return
	}
	if err := s.svc.Rate(r.Context(), id, req.Title, req.Rating); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	if err := s.svc.ClearRatings(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	prefs, err := s.svc.Preferences(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, prefs)
}

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	var req preferencesRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.writeBodyError(w, r, err)
		return
	}
	prefs, err := s.svc.SetPreferences(r.Context(), id, api.Preferences{
		MinRating: req.MinRating,
		Genres:    req.Genres,
		Directors: req.Directors,
		Runtime:   req.Runtime,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, prefs)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, ok := s.userParam(w, r)
	if !ok {
		return
	}
	stats, err := s.svc.Stats(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) userParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func (s *Server) titleParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		s.writeError(w, r, http.StatusBadRequest, "invalid title")
		return "", false
	}
	return title, true
}

// writeBodyError reports malformed or invalid request bodies.
func (s *Server) writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, http.StatusBadRequest, err.Error())
}
