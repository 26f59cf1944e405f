// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package api serves the recommendation dashboard and its JSON API over chi.

Routes:

	GET /                                         HTML dashboard (?user=<id>&scorer=<name>)
	GET /api/v1/users                             selectable user ids and scorer names
	GET /api/v1/recommendations/{scorer}/{userID} one scorer result
	GET /api/v1/health/live                       liveness probe
	GET /api/v1/health/ready                      readiness probe, 503 until tables are loaded
	GET /metrics                                  Prometheus exposition

JSON responses use the models.APIResponse envelope. Errors carry a stable
code: USER_NOT_FOUND, SCORER_NOT_FOUND, VALIDATION_ERROR, RATE_LIMITED,
TIMEOUT, RECOMMENDATION_ERROR, NOT_FOUND and METHOD_NOT_ALLOWED.

A neighbor result that degraded because the model rejected the query is not
an error: it is a 200 with empty recommendations and watched lists and a
message.
*/
package api
