// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/cinerank/internal/dataset"
)

// DefaultNeighborsK is the number of neighbor identifiers requested when unset.
const DefaultNeighborsK = 10

// NeighborUnavailableMessage is shown when the model rejects a query.
const NeighborUnavailableMessage = "Recommendations are unavailable for this user: the neighbor model cannot answer this query."

// NeighborScorer keeps unseen movies whose id is in the model's neighbor set.
// Results follow table order and carry no score.
//
// The model is queried with the user id and its answer is matched against
// movie ids. The two id spaces are not reconciled here; a model trained over
// users returns user ids that only coincidentally match movies.
type NeighborScorer struct {
	data    *dataset.Context
	querier NeighborQuerier
	k       int
}

// NewNeighborScorer creates a neighbor scorer. k <= 0 selects DefaultNeighborsK.
func NewNeighborScorer(data *dataset.Context, querier NeighborQuerier, k int) *NeighborScorer {
	if k <= 0 {
		k = DefaultNeighborsK
	}
	return &NeighborScorer{data: data, querier: querier, k: k}
}

// Name returns the scorer identifier.
func (s *NeighborScorer) Name() string { return ScorerNeighbors }

// Recommend returns unseen movies in the neighbor set, plus the user's watched movies.
//
// A value error from the model yields an empty Result with Message set and a
// nil error. Any other error is returned.
func (s *NeighborScorer) Recommend(ctx context.Context, userID int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The model is queried with the user id and its results are read as
	// movie ids. The two id spaces are not reconciled.
	ids, err := s.querier.Neighbors(ctx, userID, s.k)
	if err != nil {
		if errors.Is(err, ErrInvalidValue) {
			return &Result{
				UserID:          userID,
				Scorer:          ScorerNeighbors,
				Recommendations: []Recommendation{},
				Watched:         []WatchedMovie{},
				Message:         NeighborUnavailableMessage,
			}, nil
		}
		return nil, fmt.Errorf("query neighbors for user %d: %w", userID, err)
	}

	neighborSet := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		neighborSet[id] = struct{}{}
	}

	movies := s.data.Movies()
	recs := make([]Recommendation, 0, len(ids))
	watched := make([]WatchedMovie, 0)

	for i := range movies {
		m := &movies[i]
		if s.data.HasWatched(userID, m.ID) {
			watched = append(watched, WatchedMovie{MovieID: m.ID, Title: m.Title})
			continue
		}
		if _, ok := neighborSet[m.ID]; ok {
			recs = append(recs, Recommendation{
				MovieID:  m.ID,
				Title:    m.Title,
				ImageURL: m.ImageURL,
				URL:      m.URL,
			})
		}
	}

	return &Result{
		UserID:          userID,
		Scorer:          ScorerNeighbors,
		Recommendations: recs,
		Watched:         watched,
	}, nil
}
