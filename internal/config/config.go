// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package config loads Cinerank configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/cinerank/config.yaml)
//  3. Environment variables (see envTransformFunc for the supported names)
//
// Example config.yaml:
//
//	server:
//	  port: 8501
//	data:
//	  loader: csv
//	  profiles_path: /data/profiles.csv
//	  movies_path: /data/movies_genres.csv
//	  ratings_path: /data/ratings.csv
//	recommend:
//	  top_n: 20
//	  neighbors_k: 10
//	  model_path: /data/knn_model.json
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=0"`
}

// Addr returns the host:port listen address.
//
//nolint:gocritic // value receiver keeps ServerConfig usable as a plain value
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DataConfig locates the three read-only tables loaded at startup.
type DataConfig struct {
	// Loader selects the table backend: "csv" (encoding/csv) or "duckdb" (read_csv_auto).
	Loader string `koanf:"loader" validate:"oneof=csv duckdb"`

	// ProfilesPath is the per-user genre preference table.
	ProfilesPath string `koanf:"profiles_path" validate:"required"`

	// MoviesPath is the per-movie metadata and genre table.
	MoviesPath string `koanf:"movies_path" validate:"required"`

	// RatingsPath is the (userId, movieId) watch history table.
	RatingsPath string `koanf:"ratings_path" validate:"required"`
}

// RecommendConfig holds scorer settings.
type RecommendConfig struct {
	// TopN is the number of content-based recommendations returned.
	TopN int `koanf:"top_n" validate:"min=1,max=1000"`

	// NeighborsK is the number of neighbor identifiers requested from the model.
	NeighborsK int `koanf:"neighbors_k" validate:"min=1,max=1000"`

	// ModelPath is the serialized neighbor model.
	// The neighbor scorer is not registered when empty.
	ModelPath string `koanf:"model_path"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings passed to logging.Init.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is json (production) or console (development).
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// NeighborsEnabled reports whether a neighbor model is configured.
func (c *Config) NeighborsEnabled() bool {
	return c.Recommend.ModelPath != ""
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
