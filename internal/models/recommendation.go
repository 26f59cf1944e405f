// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package models

// Movie is a recommended movie as rendered by the API.
//
// Score is the content score (preference dot genre vector). It is omitted for
// scorers that return unscored neighbor matches.
type Movie struct {
	ID       int      `json:"movie_id"`
	Title    string   `json:"title"`
	ImageURL string   `json:"img_url"`
	URL      string   `json:"url"`
	Score    *float64 `json:"score,omitempty"`
}

// WatchedMovie is a movie already in the user's watch history.
type WatchedMovie struct {
	ID    int    `json:"movie_id"`
	Title string `json:"title"`
}

// RecommendationsResponse is the payload of
// GET /api/v1/recommendations/{scorer}/{userID}.
type RecommendationsResponse struct {
	UserID          int            `json:"user_id"`
	Scorer          string         `json:"scorer"`
	Recommendations []Movie        `json:"recommendations"`
	Watched         []WatchedMovie `json:"watched"`

	// Message is set when the scorer degraded to an empty result.
	Message string `json:"message,omitempty"`
}

// UsersResponse is the payload of GET /api/v1/users.
type UsersResponse struct {
	Users   []int    `json:"users"`
	Total   int      `json:"total"`
	Scorers []string `json:"scorers"`
}

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Users   int    `json:"users,omitempty"`
	Movies  int    `json:"movies,omitempty"`
	Genres  int    `json:"genres,omitempty"`
	Uptime  int64  `json:"uptime_seconds,omitempty"`
}
