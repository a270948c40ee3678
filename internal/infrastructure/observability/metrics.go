// Package observability exposes Prometheus metrics for the tracker service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activitiesLoggedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_tracker",
		Subsystem: "activities",
		Name:      "logged_total",
		Help:      "Number of activities logged, by category.",
	}, []string{"category"})

	pointsAwardedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "octofit_tracker",
		Subsystem: "points",
		Name:      "awarded_total",
		Help:      "Total points credited through the ledger.",
	})

	leaderboardReadsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit_tracker",
		Subsystem: "leaderboard",
		Name:      "reads_total",
		Help:      "Leaderboard reads, by kind and cache outcome.",
	}, []string{"kind", "source"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "octofit_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by route and status class.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})

	leaderboardRebuildGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "octofit_tracker",
		Subsystem: "leaderboard",
		Name:      "last_rebuild_timestamp_seconds",
		Help:      "Unix timestamp of the most recent leaderboard cache rebuild.",
	})
)

func init() {
	prometheus.MustRegister(
		activitiesLoggedCounter,
		pointsAwardedCounter,
		leaderboardReadsCounter,
		requestDuration,
		leaderboardRebuildGauge,
	)
}

// RecordActivityLogged counts one logged activity and its points.
func RecordActivityLogged(category string, points int) {
	activitiesLoggedCounter.WithLabelValues(category).Inc()
	if points > 0 {
		pointsAwardedCounter.Add(float64(points))
	}
}

// RecordLeaderboardRead counts one leaderboard read.
// source is "cache" or "store".
func RecordLeaderboardRead(kind, source string) {
	leaderboardReadsCounter.WithLabelValues(kind, source).Inc()
}

// RecordRequest observes one HTTP request's latency.
func RecordRequest(route, status string, duration time.Duration) {
	requestDuration.WithLabelValues(route, status).Observe(duration.Seconds())
}

// RecordLeaderboardRebuild updates the rebuild watermark.
func RecordLeaderboardRebuild(ts time.Time) {
	if ts.IsZero() {
		return
	}
	leaderboardRebuildGauge.Set(float64(ts.Unix()))
}
