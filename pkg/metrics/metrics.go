package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movie_favorites_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_favorites_catalog_requests_total",
			Help: "Catalog API requests by outcome (ok, not_found, unauthorized, timeout, network, rejected)",
		},
		[]string{"outcome"},
	)

	CatalogRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movie_favorites_catalog_request_duration_seconds",
			Help:    "Duration of catalog API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
	)

	CatalogBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movie_favorites_catalog_breaker_state",
			Help: "Catalog circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	FavoriteMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_favorites_favorite_mutations_total",
			Help: "Favorite add/remove operations by result (applied, noop, error)",
		},
		[]string{"operation", "result"},
	)

	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_favorites_refresh_runs_total",
			Help: "Background refresh runs by final state",
		},
		[]string{"state"},
	)

	RefreshChangedMovies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_favorites_refresh_changed_movies_total",
			Help: "Favorites found changed by background refresh",
		},
	)
)

func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
