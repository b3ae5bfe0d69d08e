package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Movie describes a catalog entry in a transport-friendly format.
type Movie struct {
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Runtime     int      `json:"runtime"`
	Genres      []string `json:"genres"`
	Director    string   `json:"director"`
	Stars       string   `json:"stars"`
	Overview    string   `json:"overview"`
	Rating      float64  `json:"rating"`
	Poster      string   `json:"poster,omitempty"`
	Certificate string   `json:"certificate,omitempty"`
	MetaScore   string   `json:"metaScore,omitempty"`
	Votes       string   `json:"votes,omitempty"`
}

// ScoredMovie pairs a movie with its similarity to the seed.
type ScoredMovie struct {
	Movie
	Score float64 `json:"score"`
}

// SimilarResponse is the result of a similarity query.
type SimilarResponse struct {
	Found bool          `json:"found"`
	Seed  *Movie        `json:"seed,omitempty"`
	Items []ScoredMovie `json:"items"`
}

// RecommendationResponse is the result of a personalized recommendation.
type RecommendationResponse struct {
	UserID   int64         `json:"userId"`
	Strategy string        `json:"strategy"`
	Seeds    []string      `json:"seeds,omitempty"`
	Items    []ScoredMovie `json:"items"`
}

// MovieListResponse wraps a collection of catalog entries.
type MovieListResponse struct {
	Items []Movie `json:"items"`
}

// User describes a registered account.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// WatchEntry is one watched title.
type WatchEntry struct {
	Title     string `json:"title"`
	WatchedAt string `json:"watchedAt,omitempty"`
}

// RatingEntry is one rated title.
type RatingEntry struct {
	Title   string `json:"title"`
	Rating  int    `json:"rating"`
	RatedAt string `json:"ratedAt,omitempty"`
}

// Preferences mirrors recommend.Preferences on the wire.
type Preferences struct {
	MinRating *float64 `json:"minRating,omitempty"`
	Genres    []string `json:"genres"`
	Directors []string `json:"directors"`
	Runtime   string   `json:"runtime"`
}

// UserStats summarizes a user's activity.
type UserStats struct {
	Watched       int     `json:"watched"`
	Rated         int     `json:"rated"`
	AverageRating float64 `json:"averageRating"`
	FavoriteGenre string  `json:"favoriteGenre,omitempty"`
}

// Status reports the loaded catalog and model.
type Status struct {
	Movies          int    `json:"movies"`
	DroppedRows     int    `json:"droppedRows"`
	Vocabulary      int    `json:"vocabulary"`
	BuildDurationMS int64  `json:"buildDurationMs"`
	CatalogPath     string `json:"catalogPath"`
	DatabasePath    string `json:"databasePath"`
}
