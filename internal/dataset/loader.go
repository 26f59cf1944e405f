// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/metrics"
)

// Loader builds a Context from some backing store.
type Loader interface {
	Name() string
	Load(ctx context.Context) (*Context, error)
}

// NewLoader selects the backend named by cfg.Loader.
func NewLoader(cfg config.DataConfig) (Loader, error) {
	switch cfg.Loader {
	case "", "csv":
		return &CSVLoader{
			ProfilesPath: cfg.ProfilesPath,
			MoviesPath:   cfg.MoviesPath,
			RatingsPath:  cfg.RatingsPath,
		}, nil
	case "duckdb":
		return &DuckDBLoader{
			ProfilesPath: cfg.ProfilesPath,
			MoviesPath:   cfg.MoviesPath,
			RatingsPath:  cfg.RatingsPath,
		}, nil
	default:
		return nil, fmt.Errorf("unknown data loader %q", cfg.Loader)
	}
}

// Open loads the tables once and publishes their sizes.
func Open(ctx context.Context, cfg config.DataConfig) (*Context, error) {
	loader, err := NewLoader(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	dc, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tables with %s loader: %w", loader.Name(), err)
	}
	elapsed := time.Since(start)

	s := dc.Stats()
	metrics.RecordDatasetLoad(loader.Name(), s.Profiles, s.Movies, s.Ratings, s.Genres, elapsed)
	logging.Info().
		Str("loader", loader.Name()).
		Int("profiles", s.Profiles).
		Int("movies", s.Movies).
		Int("ratings", s.Ratings).
		Int("genres", s.Genres).
		Int("users", s.Users).
		Dur("duration", elapsed).
		Msg("Dataset loaded")

	return dc, nil
}
