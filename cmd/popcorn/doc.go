// Package main hosts the popcorn CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the recommendation
// service on demand, and renders results as go-pretty tables or, with --json,
// as indented JSON. `popcorn serve` runs the HTTP API in the foreground.
//
// Keep this package thin: behaviour belongs in internal/api and the packages
// beneath it, and commands here only parse arguments and format output.
package main
