// Package metrics provides Prometheus instrumentation for popcorn.
//
// Collectors register with the default registry at package init via promauto
// and are exposed by Handler at GET /metrics.
//
//	popcorn_catalog_movies                  gauge: movies loaded into the engine
//	popcorn_catalog_dropped_rows            gauge: catalog rows rejected at load
//	popcorn_model_vocabulary_terms          gauge: distinct terms in the TF-IDF vocabulary
//	popcorn_model_build_seconds             gauge: similarity model build time
//	popcorn_similar_queries_total           counter: similarity queries by outcome
//	popcorn_recommendations_total           counter: user recommendations by strategy
//	popcorn_empty_results_total             counter: queries whose filters left nothing
//	popcorn_http_requests_total             counter: HTTP requests by method/route/status
//	popcorn_http_request_duration_seconds   histogram: HTTP latency by method/route
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CatalogMovies is the number of movies loaded into the engine.
var CatalogMovies = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "popcorn_catalog_movies",
	Help: "Movies loaded into the recommendation engine.",
})

// CatalogDropped is the number of catalog rows rejected during load.
var CatalogDropped = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "popcorn_catalog_dropped_rows",
	Help: "Catalog rows rejected during load.",
})

// VocabularyTerms is the size of the fitted TF-IDF vocabulary.
var VocabularyTerms = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "popcorn_model_vocabulary_terms",
	Help: "Distinct terms in the similarity model vocabulary.",
})

// ModelBuildSeconds records how long the similarity model took to build.
var ModelBuildSeconds = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "popcorn_model_build_seconds",
	Help: "Time spent building the similarity model at startup.",
})

// SimilarQueries counts similarity queries by outcome (found, unknown_title).
var SimilarQueries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "popcorn_similar_queries_total",
	Help: "Similarity queries by outcome.",
}, []string{"outcome"})

// Recommendations counts personalized recommendation requests by strategy.
var Recommendations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "popcorn_recommendations_total",
	Help: "User recommendation requests by strategy.",
}, []string{"strategy"})

// EmptyResults counts queries whose filters removed every candidate.
var EmptyResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "popcorn_empty_results_total",
	Help: "Queries that returned no items after filtering.",
}, []string{"operation"})

// HTTPRequests counts HTTP requests by method, route, and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "popcorn_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// HTTPDuration tracks HTTP request latency.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "popcorn_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency. Routes are labelled with
// the chi route pattern so path parameters do not inflate cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := routePattern(r)
		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
