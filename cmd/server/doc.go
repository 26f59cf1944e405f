// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

/*
Package main is the Cinerank server.

Startup order:

 1. Load configuration (defaults, config.yaml, environment)
 2. Initialize zerolog
 3. Load the profile, movie and ratings tables
 4. Register the content scorer, and the neighbor scorer when a model is configured
 5. Build the chi router and HTTP server
 6. Run the HTTP server under the suture supervisor tree until SIGINT or SIGTERM

Environment variables:

	HTTP_HOST, HTTP_PORT          listen address (default 0.0.0.0:8501)
	HTTP_TIMEOUT                  read/write and per-request timeout
	SHUTDOWN_TIMEOUT              graceful shutdown budget
	DATA_LOADER                   csv or duckdb
	PROFILES_PATH                 user genre profiles table
	MOVIES_PATH                   movie metadata table
	RATINGS_PATH                  watch history table
	RECOMMEND_TOP_N               content recommendations per request (default 20)
	RECOMMEND_NEIGHBORS_K         neighbor identifiers per request (default 10)
	RECOMMEND_MODEL_PATH          neighbor model file, enables the neighbor scorer
	CORS_ORIGINS                  comma separated allowed origins
	RATE_LIMIT_REQUESTS           requests per window per client
	RATE_LIMIT_WINDOW             rate limit window
	DISABLE_RATE_LIMIT            turn off rate limiting
	LOG_LEVEL, LOG_FORMAT         zerolog level and json/console output
	LOG_CALLER                    include caller in log lines
	CONFIG_PATH                   explicit config file path

The version is set at build time:

	go build -ldflags "-X main.version=1.2.0" ./cmd/server
*/
package main
