package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/flock"

	"popcorn/internal/api"
	"popcorn/internal/config"
	"popcorn/internal/logging"
	"popcorn/internal/metrics"
)

// ErrAlreadyRunning indicates another server holds the data directory lock.
var ErrAlreadyRunning = errors.New("another popcorn server is already running")

// Server is the HTTP front end for api.Service.
type Server struct {
	bind      string
	logger    *slog.Logger
	svc       *api.Service
	validate  *validator.Validate
	maxCount  int
	lockPath  string
	lock      *flock.Flock
	listener  net.Listener
	server    *http.Server
	serveDone chan struct{}
}

// New builds a server for svc bound to cfg.Paths.APIBind.
func New(cfg *config.Config, svc *api.Service, logger *slog.Logger) (*Server, error) {
	if cfg == nil || svc == nil {
		return nil, errors.New("server requires config and service")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api_bind is not configured")
	}

	s := &Server{
		bind:     bind,
		logger:   logging.NewComponentLogger(logger, "http"),
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		maxCount: config.MaxRecommendationCount,
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", s.handleMovies)
			r.Get("/{title}", s.handleMovie)
			r.Get("/{title}/similar", s.handleSimilar)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", s.handleGetUser)
				r.Delete("/", s.handleDeleteUser)
				r.Get("/recommendations", s.handleRecommendations)
				r.Get("/watched", s.handleWatchHistory)
				r.Post("/watched", s.handleWatch)
				r.Delete("/watched", s.handleClearWatchHistory)
				r.Get("/ratings", s.handleRatings)
				r.Put("/ratings", s.handleRate)
				r.Delete("/ratings", s.handleClearRatings)
				r.Get("/preferences", s.handlePreferences)
				r.Put("/preferences", s.handleSetPreferences)
				r.Get("/stats", s.handleStats)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Start acquires the instance lock and begins serving. The server shuts down
// when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, s.lockPath)
	}

	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener
	done := make(chan struct{})
	s.serveDone = done

	go func() {
		defer close(done)
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "api server error", "http_serve_failed", logging.Error(err))
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-done:
		}
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", s.lockPath),
	)
	return nil
}

// Addr returns the bound listener address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Done is closed when the server stops serving.
func (s *Server) Done() <-chan struct{} {
	return s.serveDone
}

// Stop shuts the server down and releases the lock.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release server lock", logging.Error(err))
	}
}
