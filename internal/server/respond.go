package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"popcorn/internal/api"
	"popcorn/internal/logging"
	"popcorn/internal/recommend"
	"popcorn/internal/userstore"
)

const requestIDHeader = "X-Request-ID"

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.WithContext(r.Context(), s.logger).Warn("encode response failed", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rid, _ := logging.RequestIDFromContext(r.Context())
	s.writeJSON(w, r, status, errorResponse{Error: message, RequestID: rid})
}

// writeServiceError maps service and store errors to HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, userstore.ErrUserNotFound), errors.Is(err, api.ErrUnknownTitle):
		s.writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, userstore.ErrUserExists):
		s.writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, userstore.ErrInvalidUsername),
		errors.Is(err, userstore.ErrInvalidEmail),
		errors.Is(err, userstore.ErrInvalidRating),
		errors.Is(err, userstore.ErrInvalidTitle),
		errors.Is(err, recommend.ErrInvalidPreferences),
		errors.As(err, &validationErrs):
		s.writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger),
			"request failed", "http_request_failed",
			logging.String("path", r.URL.Path),
			logging.Error(err),
		)
		s.writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
