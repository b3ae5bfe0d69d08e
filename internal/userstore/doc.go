// Package userstore persists users, their watch history, ratings, and
// recommendation preferences in SQLite.
//
// The store owns the schema (embedded schema.sql plus a schema_version row)
// and wraps every write in a busy retry so the CLI and a running server can
// share one database file. Profile gathers everything the recommender needs
// for a user in a single call.
package userstore
