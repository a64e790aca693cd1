package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arcadely/arcade/internal/middleware"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcade_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arcade_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	gamesPlayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arcade_games_played_total",
		Help: "Accepted game actions by game.",
	}, []string{"game"})
)

// Handler exposes the Prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// CountGame records one accepted action for the named game
func CountGame(game string) {
	gamesPlayed.WithLabelValues(game).Inc()
}

// Instrument records request counts and latency. The route label uses the
// matched route template, not the raw path, to keep cardinality bounded.
func Instrument(routeName func(r *http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := middleware.NewResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			route := routeName(r)
			requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.Status())).Inc()
			requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
