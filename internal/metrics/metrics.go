// Package metrics holds the Prometheus collectors of the pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fluffyshare_runs_total",
		Help: "Processing runs by type and final status",
	}, []string{"run_type", "status"})
	RunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fluffyshare_run_duration_seconds",
		Help:    "Processing run duration in seconds",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
	})
	TweetsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fluffyshare_tweets_processed_total",
		Help: "Tweets fetched and stored",
	})
	ScoresComputed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fluffyshare_scores_computed_total",
		Help: "Tweet scores computed",
	})
	APICalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fluffyshare_api_calls_total",
		Help: "Tweet API requests by endpoint and status class",
	}, []string{"endpoint", "status"})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fluffyshare_api_retries_total",
		Help: "Tweet API retry attempts",
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(Runs, RunDuration, TweetsProcessed, ScoresComputed, APICalls, APIRetries)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records a finished run.
func ObserveRun(runType, status string, started time.Time) {
	Runs.WithLabelValues(runType, status).Inc()
	RunDuration.Observe(time.Since(started).Seconds())
}

// ObserveAPICall counts one request attempt against endpoint.
func ObserveAPICall(endpoint string, statusCode int) {
	APICalls.WithLabelValues(endpoint, statusClass(statusCode)).Inc()
}

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }

func statusClass(code int) string {
	switch {
	case code == 0:
		return "error"
	case code < 300:
		return "2xx"
	case code == http.StatusTooManyRequests:
		return "429"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
