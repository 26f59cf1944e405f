// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package config

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"rate limit disabled ignores zero requests", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
		{"wildcard origin", func(c *Config) { c.Security.CORSOrigins = []string{"*"} }, false},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"zero rate limit requests", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"zero rate limit window", func(c *Config) { c.Security.RateLimitWindow = 0 }, true},
		{"empty movies path", func(c *Config) { c.Data.MoviesPath = "" }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"neighbors k too large", func(c *Config) { c.Recommend.NeighborsK = 5000 }, true},
		{"quote in duckdb path", func(c *Config) {
			c.Data.Loader = "duckdb"
			c.Data.RatingsPath = "/tmp/it's.csv"
		}, true},
		{"quote in csv path", func(c *Config) { c.Data.RatingsPath = "/tmp/it's.csv" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
