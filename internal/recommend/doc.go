// Package recommend ranks catalog movies by content similarity and turns a
// user's ratings, watch history, and preferences into recommendations.
//
// Engine wraps the loaded catalog and its similarity model. It is built once
// at startup and is read-only afterwards, so a single Engine can serve
// concurrent requests without locking. Filter applies preference constraints
// to any ranked slice; ForUser combines both for a user profile.
package recommend
