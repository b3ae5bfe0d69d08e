// Package api is the application layer shared by the CLI and the HTTP
// server. Service loads the catalog once, builds the recommendation engine,
// and routes user activity between the user store and the engine.
//
// # Key Types
//
// Service: owns the immutable recommend.Engine and a UserStore. All methods
// are safe for concurrent use.
//
// Movie, ScoredMovie, SimilarResponse, RecommendationResponse, User,
// UserStats: transport DTOs with camelCase JSON tags, built by the From*
// converters.
//
// # Design Notes
//
// An unknown seed title is not an error: Similar reports Found=false so
// callers can tell it apart from a known seed with no surviving candidates.
// Watching or rating a title that is not in the catalog is rejected with
// ErrUnknownTitle before anything is written.
package api
