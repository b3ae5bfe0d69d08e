package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"popcorn/internal/catalog"
	"popcorn/internal/config"
	"popcorn/internal/logging"
	"popcorn/internal/metrics"
	"popcorn/internal/recommend"
	"popcorn/internal/userstore"
)

// ErrUnknownTitle indicates a title that is not in the catalog.
var ErrUnknownTitle = errors.New("title not in catalog")

// UserStore is the persistence the service needs for user activity.
type UserStore interface {
	CreateUser(ctx context.Context, username, email string) (*userstore.User, error)
	GetUser(ctx context.Context, id int64) (*userstore.User, error)
	FindUser(ctx context.Context, username string) (*userstore.User, error)
	ListUsers(ctx context.Context) ([]*userstore.User, error)
	DeleteUser(ctx context.Context, id int64) error
	AddToWatchHistory(ctx context.Context, userID int64, title string) error
	WatchHistory(ctx context.Context, userID int64) ([]userstore.WatchEntry, error)
	ClearWatchHistory(ctx context.Context, userID int64) error
	UpsertRating(ctx context.Context, userID int64, title string, rating int) error
	Ratings(ctx context.Context, userID int64) ([]userstore.RatingEntry, error)
	ClearRatings(ctx context.Context, userID int64) error
	Preferences(ctx context.Context, userID int64) (recommend.Preferences, error)
	SetPreferences(ctx context.Context, userID int64, prefs recommend.Preferences) error
	Profile(ctx context.Context, userID int64) (recommend.Profile, error)
	Stats(ctx context.Context, userID int64) (userstore.Stats, error)
	Path() string
}

// Service coordinates the catalog, the engine, and the user store.
type Service struct {
	cfg           *config.Config
	corpus        *catalog.Corpus
	engine        *recommend.Engine
	store         UserStore
	logger        *slog.Logger
	buildDuration time.Duration
}

// NewService loads the configured catalog and builds the engine. Rows the
// loader rejects are logged and skipped.
func NewService(cfg *config.Config, store UserStore, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	logger = logging.NewComponentLogger(logger, "recommender")

	corpus, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	for _, dropped := range corpus.Dropped {
		logging.WarnWithContext(logger, "catalog row dropped", "catalog_row_dropped",
			logging.String(logging.FieldTitle, dropped.Title),
			logging.Int("line", dropped.Line),
			logging.Error(dropped.Err),
			logging.String(logging.FieldErrorHint, "fix or remove the row in the catalog file"),
			logging.String(logging.FieldImpact, "movie is not recommendable"),
		)
	}
	if corpus.Len() == 0 {
		return nil, fmt.Errorf("catalog %s contains no usable movies", cfg.Catalog.Path)
	}

	start := time.Now()
	engine := recommend.NewEngine(corpus.Movies, recommend.Options{
		SeedCount:    cfg.Recommend.SeedCount,
		PerSeedCount: cfg.Recommend.PerSeedCount,
	})
	elapsed := time.Since(start)

	metrics.CatalogMovies.Set(float64(corpus.Len()))
	metrics.CatalogDropped.Set(float64(len(corpus.Dropped)))
	metrics.VocabularyTerms.Set(float64(engine.Model().VocabularySize()))
	metrics.ModelBuildSeconds.Set(elapsed.Seconds())
	logger.Info("similarity model built",
		logging.Int("movies", corpus.Len()),
		logging.Int("dropped", len(corpus.Dropped)),
		logging.Int("vocabulary", engine.Model().VocabularySize()),
		logging.Duration("elapsed", elapsed),
	)

	return &Service{
		cfg:           cfg,
		corpus:        corpus,
		engine:        engine,
		store:         store,
		logger:        logger,
		buildDuration: elapsed,
	}, nil
}

// Engine exposes the shared recommendation engine.
func (s *Service) Engine() *recommend.Engine {
	return s.engine
}

// DefaultCount is the configured personalized recommendation size.
func (s *Service) DefaultCount() int {
	return s.cfg.Recommend.DefaultCount
}

// DefaultSimilarCount is the configured similarity result size.
func (s *Service) DefaultSimilarCount() int {
	return s.cfg.Recommend.SimilarCount
}

// Status reports catalog and model details.
func (s *Service) Status() Status {
	status := Status{
		Movies:          s.corpus.Len(),
		DroppedRows:     len(s.corpus.Dropped),
		Vocabulary:      s.engine.Model().VocabularySize(),
		BuildDurationMS: s.buildDuration.Milliseconds(),
		CatalogPath:     s.cfg.Catalog.Path,
	}
	if s.store != nil {
		status.DatabasePath = s.store.Path()
	}
	return status
}

// MovieFilter narrows catalog listings. Empty fields match everything.
type MovieFilter struct {
	Genre    string
	Director string
}

// Movies lists catalog entries in load order.
func (s *Service) Movies(filter MovieFilter) []Movie {
	prefs := recommend.Preferences{}
	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		prefs.Genres = []string{genre}
	}
	if director := strings.TrimSpace(filter.Director); director != "" {
		prefs.Directors = []string{director}
	}
	movies := s.engine.Movies()
	out := make([]Movie, 0, len(movies))
	for i := range movies {
		if prefs.Matches(&movies[i]) {
			out = append(out, FromMovie(&movies[i]))
		}
	}
	return out
}

// Movie looks up one catalog entry, ignoring case.
func (s *Service) Movie(title string) (Movie, error) {
	canonical, err := s.catalogTitle(title)
	if err != nil {
		return Movie{}, err
	}
	m, _ := s.engine.Movie(canonical)
	return FromMovie(m), nil
}

// Genres lists the distinct genres in the catalog.
func (s *Service) Genres() []string {
	return s.corpus.Genres()
}

// Directors lists the distinct directors in the catalog.
func (s *Service) Directors() []string {
	return s.corpus.Directors()
}

// Similar returns up to n titles similar to title, narrowed by refine. The
// seed is matched exactly first and then ignoring case.
func (s *Service) Similar(ctx context.Context, title string, n int, refine recommend.Refinement) SimilarResponse {
	if canonical, err := s.catalogTitle(title); err == nil {
		title = canonical
	}
	res := s.engine.Similar(title, n).Refine(refine)
	log := logging.WithContext(ctx, s.logger)
	if !res.Found {
		metrics.SimilarQueries.WithLabelValues("unknown_title").Inc()
		log.Debug("similar query for unknown title",
			logging.String(logging.FieldTitle, title),
			logging.Bool("found", false),
		)
		return FromResult(res)
	}
	metrics.SimilarQueries.WithLabelValues("found").Inc()
	if len(res.Items) == 0 && n > 0 {
		metrics.EmptyResults.WithLabelValues("similar").Inc()
	}
	log.Debug("similar titles ranked",
		logging.String(logging.FieldTitle, title),
		logging.Bool("found", true),
		logging.Int("count", len(res.Items)),
	)
	return FromResult(res)
}

// Recommend builds personalized recommendations for a user.
func (s *Service) Recommend(ctx context.Context, userID int64, n int) (RecommendationResponse, error) {
	profile, err := s.store.Profile(ctx, userID)
	if err != nil {
		return RecommendationResponse{}, err
	}
	rec := s.engine.ForUser(profile, n)
	metrics.Recommendations.WithLabelValues(string(rec.Strategy)).Inc()
	if len(rec.Items) == 0 && n > 0 {
		metrics.EmptyResults.WithLabelValues("recommend").Inc()
	}
	logging.WithContext(ctx, s.logger).Debug("recommendations ranked",
		logging.Int64(logging.FieldUserID, userID),
		logging.String("strategy", string(rec.Strategy)),
		logging.Int("count", len(rec.Items)),
	)
	return FromRecommendation(userID, rec), nil
}

// CreateUser registers a user.
func (s *Service) CreateUser(ctx context.Context, username, email string) (User, error) {
	user, err := s.store.CreateUser(ctx, username, email)
	if err != nil {
		return User{}, err
	}
	logging.WithContext(ctx, s.logger).Info("user created",
		logging.Int64(logging.FieldUserID, user.ID),
		logging.String("username", user.Username),
	)
	return FromUser(user), nil
}

// ResolveUser finds a user by numeric id or username.
func (s *Service) ResolveUser(ctx context.Context, ref string) (User, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		user, err := s.store.GetUser(ctx, id)
		if err == nil {
			return FromUser(user), nil
		}
		if !errors.Is(err, userstore.ErrUserNotFound) {
			return User{}, err
		}
	}
	user, err := s.store.FindUser(ctx, ref)
	if err != nil {
		return User{}, err
	}
	return FromUser(user), nil
}

// GetUser fetches a user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	return FromUser(user), nil
}

// ListUsers returns every registered user.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(users))
	for _, user := range users {
		out = append(out, FromUser(user))
	}
	return out, nil
}

// DeleteUser removes a user and their activity.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx, s.logger).Info("user deleted", logging.Int64(logging.FieldUserID, id))
	return nil
}

// Watch records a catalog title as watched.
func (s *Service) Watch(ctx context.Context, userID int64, title string) error {
	canonical, err := s.catalogTitle(title)
	if err != nil {
		return err
	}
	return s.store.AddToWatchHistory(ctx, userID, canonical)
}

// Rate stores a 1-10 rating for a catalog title.
func (s *Service) Rate(ctx context.Context, userID int64, title string, rating int) error {
	canonical, err := s.catalogTitle(title)
	if err != nil {
		return err
	}
	return s.store.UpsertRating(ctx, userID, canonical, rating)
}

// WatchHistory returns the user's watched titles, most recent first.
func (s *Service) WatchHistory(ctx context.Context, userID int64) ([]WatchEntry, error) {
	entries, err := s.store.WatchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromWatchHistory(entries), nil
}

// Ratings returns the user's ratings, most recent first.
func (s *Service) Ratings(ctx context.Context, userID int64) ([]RatingEntry, error) {
	entries, err := s.store.Ratings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromRatings(entries), nil
}

// ClearWatchHistory forgets every watched title.
func (s *Service) ClearWatchHistory(ctx context.Context, userID int64) error {
	return s.store.ClearWatchHistory(ctx, userID)
}

// ClearRatings forgets every rating.
func (s *Service) ClearRatings(ctx context.Context, userID int64) error {
	return s.store.ClearRatings(ctx, userID)
}

// Preferences returns the user's stored preferences.
func (s *Service) Preferences(ctx context.Context, userID int64) (Preferences, error) {
	prefs, err := s.store.Preferences(ctx, userID)
	if err != nil {
		return Preferences{}, err
	}
	return FromPreferences(prefs), nil
}

// SetPreferences validates and stores preferences.
func (s *Service) SetPreferences(ctx context.Context, userID int64, p Preferences) (Preferences, error) {
	prefs, err := ToPreferences(p)
	if err != nil {
		return Preferences{}, err
	}
	if err := s.store.SetPreferences(ctx, userID, prefs); err != nil {
		return Preferences{}, err
	}
	return FromPreferences(prefs), nil
}

// Stats summarizes the user's activity. The favorite genre is the genre most
// common among watched titles, ties broken alphabetically.
func (s *Service) Stats(ctx context.Context, userID int64) (UserStats, error) {
	stats, err := s.store.Stats(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}
	history, err := s.store.WatchHistory(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}

	counts := make(map[string]int)
	for _, entry := range history {
		if m, ok := s.engine.Movie(entry.Title); ok {
			for _, genre := range m.Genres() {
				counts[genre]++
			}
		}
	}
	return UserStats{
		Watched:       stats.Watched,
		Rated:         stats.Rated,
		AverageRating: stats.AverageRating,
		FavoriteGenre: favorite(counts),
	}, nil
}

func favorite(counts map[string]int) string {
	genres := make([]string, 0, len(counts))
	for genre := range counts {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) == 0 {
		return ""
	}
	return genres[0]
}

// catalogTitle resolves a title exactly, then case-insensitively.
func (s *Service) catalogTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if m, ok := s.engine.Movie(title); ok {
		return m.Title, nil
	}
	movies := s.engine.Movies()
	for i := range movies {
		if strings.EqualFold(movies[i].Title, title) {
			return movies[i].Title, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTitle, title)
}
