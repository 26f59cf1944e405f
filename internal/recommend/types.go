// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package recommend implements the two scoring pipelines over a dataset.Context.
//
//   - ContentScorer ranks unseen movies by the dot product of their genre
//     vector with the user's preference vector.
//   - NeighborScorer keeps unseen movies whose id is among the k identifiers
//     returned by a NeighborQuerier.
//
// Scorers are synchronous and hold no mutable state, so one instance serves
// concurrent requests.
package recommend

import (
	"context"
	"errors"
)

// Scorer names.
const (
	ScorerContent   = "content"
	ScorerNeighbors = "neighbors"
)

// Sentinel errors.
var (
	// ErrUnknownUser is returned when the user has no preference profile.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidValue marks value errors raised by a neighbor model, such as
	// an id the model does not index or an out-of-range k.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownScorer is returned by Service for an unregistered scorer name.
	ErrUnknownScorer = errors.New("unknown scorer")
)

// Recommendation is one recommended movie.
type Recommendation struct {
	MovieID  int
	Title    string
	ImageURL string
	URL      string

	// Score is meaningful only when Scored is true.
	Score  float64
	Scored bool
}

// WatchedMovie is a movie from the user's history.
type WatchedMovie struct {
	MovieID int
	Title   string
}

// Result is the output of one scorer call. It is built per request and never cached.
type Result struct {
	UserID          int
	Scorer          string
	Recommendations []Recommendation
	Watched         []WatchedMovie

	// Message is a user-visible explanation when the scorer degraded to an
	// empty result instead of failing.
	Message string
}

// Scorer produces recommendations for one user.
type Scorer interface {
	Name() string
	Recommend(ctx context.Context, userID int) (*Result, error)
}

// NeighborQuerier returns the k identifiers nearest to id under the model's metric.
// Errors that are value errors must match ErrInvalidValue.
type NeighborQuerier interface {
	Neighbors(ctx context.Context, id, k int) ([]int, error)
}
