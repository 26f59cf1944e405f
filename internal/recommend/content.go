// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/cinerank/internal/dataset"
)

// DefaultTopN is the number of content recommendations returned when unset.
const DefaultTopN = 20

// ContentScorer scores unseen movies as dot(genre vector, preference vector).
//
// Scores are not normalized and carry no bias term. Movies keep table order
// among equal scores.
type ContentScorer struct {
	data *dataset.Context
	topN int
}

// NewContentScorer creates a content scorer. topN <= 0 selects DefaultTopN.
func NewContentScorer(data *dataset.Context, topN int) *ContentScorer {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &ContentScorer{data: data, topN: topN}
}

// Name returns the scorer identifier.
func (s *ContentScorer) Name() string { return ScorerContent }

// Recommend returns the top unseen movies by score and the watched movies in table order.
func (s *ContentScorer) Recommend(ctx context.Context, userID int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, ok := s.data.Profile(userID)
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUnknownUser)
	}

	movies := s.data.Movies()
	recs := make([]Recommendation, 0, len(movies))
	watched := make([]WatchedMovie, 0)

	for i := range movies {
		m := &movies[i]
		if s.data.HasWatched(userID, m.ID) {
			watched = append(watched, WatchedMovie{MovieID: m.ID, Title: m.Title})
			continue
		}
		recs = append(recs, Recommendation{
			MovieID:  m.ID,
			Title:    m.Title,
			ImageURL: m.ImageURL,
			URL:      m.URL,
			Score:    dot(m.Genres, profile),
			Scored:   true,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > s.topN {
		recs = recs[:s.topN]
	}

	return &Result{
		UserID:          userID,
		Scorer:          ScorerContent,
		Recommendations: recs,
		Watched:         watched,
	}, nil
}

// dot assumes equal lengths, which dataset.New enforces.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
