// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package middleware provides HTTP middleware shared by the dashboard and the
JSON API.

Key Components:

  - Request ID: UUID-based request tracking wired into the logging context
  - Prometheus Metrics: request count, latency and in-flight instrumentation
  - Compression: gzip for clients that send Accept-Encoding: gzip

All middleware uses the func(http.HandlerFunc) http.HandlerFunc shape. The
api package adapts them to chi with its chiMiddleware helper:

	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	    r.Use(chiMiddleware(middleware.Compression))
	    r.Get("/users", handler.Users)
	})

PrometheusMetrics labels requests with the chi route pattern, for example
/api/v1/recommendations/{scorer}/{userID}, rather than the raw path.
*/
package middleware
