// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/cinerank/internal/dataset"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/metrics"
)

// Service routes requests to scorers by name and instruments every call.
// Scorers are registered before the service is shared.
type Service struct {
	data    *dataset.Context
	scorers map[string]Scorer
}

// NewService creates a service over data with the given scorers.
func NewService(data *dataset.Context, scorers ...Scorer) (*Service, error) {
	s := &Service{
		data:    data,
		scorers: make(map[string]Scorer, len(scorers)),
	}
	for _, sc := range scorers {
		if _, dup := s.scorers[sc.Name()]; dup {
			return nil, fmt.Errorf("scorer %q registered twice", sc.Name())
		}
		s.scorers[sc.Name()] = sc
	}
	return s, nil
}

// Users returns the selectable user ids.
func (s *Service) Users() []int {
	return s.data.Users()
}

// Stats returns dataset sizes for health reporting.
func (s *Service) Stats() dataset.Stats {
	return s.data.Stats()
}

// Scorers returns registered scorer names with "content" first.
func (s *Service) Scorers() []string {
	names := make([]string, 0, len(s.scorers))
	for name := range s.scorers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i] == ScorerContent || names[j] == ScorerContent {
			return names[i] == ScorerContent
		}
		return names[i] < names[j]
	})
	return names
}

// HasScorer reports whether name is registered.
func (s *Service) HasScorer(name string) bool {
	_, ok := s.scorers[name]
	return ok
}

// Recommend runs the named scorer for userID.
func (s *Service) Recommend(ctx context.Context, scorer string, userID int) (*Result, error) {
	sc, ok := s.scorers[scorer]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScorer, scorer)
	}

	logger := logging.Ctx(ctx).With().
		Str("component", "recommend").
		Str("scorer", scorer).
		Int("user_id", userID).
		Logger()

	start := time.Now()
	res, err := sc.Recommend(ctx, userID)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrUnknownUser):
		metrics.RecordRecommendation(scorer, metrics.OutcomeUnknownUser, 0, elapsed)
		logger.Debug().Msg("user has no profile")
		return nil, err
	case err != nil:
		metrics.RecordRecommendation(scorer, metrics.OutcomeError, 0, elapsed)
		logger.Error().Err(err).Msg("scorer failed")
		return nil, err
	case res.Message != "":
		metrics.RecordRecommendation(scorer, metrics.OutcomeDegraded, 0, elapsed)
		logger.Warn().Str("reason", res.Message).Msg("scorer returned degraded result")
	case len(res.Recommendations) == 0:
		metrics.RecordRecommendation(scorer, metrics.OutcomeEmpty, 0, elapsed)
	default:
		metrics.RecordRecommendation(scorer, metrics.OutcomeSuccess, len(res.Recommendations), elapsed)
	}

	logger.Debug().
		Int("returned", len(res.Recommendations)).
		Int("watched", len(res.Watched)).
		Dur("duration", elapsed).
		Msg("recommendation complete")

	return res, nil
}
