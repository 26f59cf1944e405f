// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/dataset"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/metrics"
	"github.com/tomtom215/cinerank/internal/recommend"
	"github.com/tomtom215/cinerank/internal/recommend/neighbors"
)

// initRecommend loads the tables and registers the scorers. The content
// scorer is always available; the neighbor scorer only when a model file is
// configured.
func initRecommend(ctx context.Context, cfg *config.Config) (*recommend.Service, error) {
	data, err := dataset.Open(ctx, cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	scorers := []recommend.Scorer{
		recommend.NewContentScorer(data, cfg.Recommend.TopN),
	}

	if cfg.NeighborsEnabled() {
		index, err := neighbors.Load(cfg.Recommend.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load neighbor model: %w", err)
		}
		metrics.NeighborModelVectors.Set(float64(index.Len()))
		scorers = append(scorers, recommend.NewNeighborScorer(data, index, cfg.Recommend.NeighborsK))

		logging.Info().
			Str("model_path", cfg.Recommend.ModelPath).
			Str("metric", index.Metric()).
			Int("vectors", index.Len()).
			Int("k", cfg.Recommend.NeighborsK).
			Msg("Neighbor scorer enabled")
	} else {
		logging.Info().Msg("Neighbor scorer disabled (RECOMMEND_MODEL_PATH not set)")
	}

	svc, err := recommend.NewService(data, scorers...)
	if err != nil {
		return nil, err
	}
	logging.Info().Strs("scorers", svc.Scorers()).Int("top_n", cfg.Recommend.TopN).Msg("Recommendation service ready")
	return svc, nil
}
