// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package metrics declares the Prometheus collectors exported at /metrics.
//
// API metrics:
//   - api_requests_total{method,endpoint,status_code}
//   - api_request_duration_seconds{method,endpoint}
//   - api_active_requests
//   - api_rate_limit_hits_total{endpoint}
//
// Recommendation metrics:
//   - recommendation_requests_total{scorer,outcome}
//   - recommendation_duration_seconds{scorer}
//   - recommendation_result_size{scorer}
//
// Dataset metrics:
//   - dataset_rows{table}
//   - dataset_genres
//   - dataset_load_duration_seconds{loader}
//   - neighbor_model_vectors
//   - app_info{version}, app_start_time_seconds
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeEmpty       = "empty"
	OutcomeDegraded    = "degraded"
	OutcomeUnknownUser = "unknown_user"
	OutcomeError       = "error"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by scorer and outcome",
		},
		[]string{"scorer", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent computing one recommendation list",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"scorer"},
	)

	RecommendationResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of movies returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"scorer"},
	)

	// Dataset Metrics
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Rows loaded per table",
		},
		[]string{"table"}, // "profiles", "movies", "ratings"
	)

	DatasetGenres = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_genres",
			Help: "Number of genre columns shared by the profile and movie tables",
		},
	)

	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time spent loading all tables at startup",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"loader"},
	)

	NeighborModelVectors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "neighbor_model_vectors",
			Help: "Number of vectors indexed by the neighbor model",
		},
	)

	// Application Info
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application build information",
		},
		[]string{"version"},
	)

	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_start_time_seconds",
			Help: "Unix time the process started",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one scorer call.
func RecordRecommendation(scorer, outcome string, resultSize int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(scorer, outcome).Inc()
	RecommendationDuration.WithLabelValues(scorer).Observe(duration.Seconds())
	if outcome == OutcomeSuccess || outcome == OutcomeEmpty {
		RecommendationResultSize.WithLabelValues(scorer).Observe(float64(resultSize))
	}
}

// RecordDatasetLoad publishes table sizes after a successful load.
func RecordDatasetLoad(loader string, profiles, movies, ratings, genres int, duration time.Duration) {
	DatasetRows.WithLabelValues("profiles").Set(float64(profiles))
	DatasetRows.WithLabelValues("movies").Set(float64(movies))
	DatasetRows.WithLabelValues("ratings").Set(float64(ratings))
	DatasetGenres.Set(float64(genres))
	DatasetLoadDuration.WithLabelValues(loader).Observe(duration.Seconds())
}

// SetAppInfo publishes the build version and start time.
func SetAppInfo(version string, started time.Time) {
	AppInfo.WithLabelValues(version).Set(1)
	AppStartTime.Set(float64(started.Unix()))
}
