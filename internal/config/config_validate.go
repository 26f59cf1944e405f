// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cinerank/internal/validation"
)

// Validate checks struct tags first, then rules spanning several fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if c.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1 when rate limiting is enabled")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive when rate limiting is enabled")
		}
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("security.cors_origins entry %q must start with http:// or https://", origin)
		}
	}

	paths := map[string]string{
		"data.profiles_path": c.Data.ProfilesPath,
		"data.movies_path":   c.Data.MoviesPath,
		"data.ratings_path":  c.Data.RatingsPath,
	}
	for key, p := range paths {
		if strings.ContainsRune(p, '\'') && c.Data.Loader == "duckdb" {
			return fmt.Errorf("%s must not contain a single quote with the duckdb loader", key)
		}
	}
	return nil
}
