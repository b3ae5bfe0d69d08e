// Package server exposes the recommendation service over HTTP.
//
// Routes are served by a chi router with request ids, panic recovery, and
// Prometheus instrumentation. Request bodies and query parameters are
// validated with go-playground/validator before they reach api.Service.
// Start takes an exclusive lock in the data directory so only one server
// owns the user database at a time.
package server
