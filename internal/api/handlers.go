// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinerank/internal/dataset"
	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/models"
	"github.com/tomtom215/cinerank/internal/recommend"
)

// DefaultRequestTimeout bounds one scorer call when HandlerConfig.Timeout is zero.
const DefaultRequestTimeout = 30 * time.Second

// Recommender is the scoring surface the handlers depend on.
// *recommend.Service satisfies it.
type Recommender interface {
	Users() []int
	Scorers() []string
	Stats() dataset.Stats
	Recommend(ctx context.Context, scorer string, userID int) (*recommend.Result, error)
}

// HandlerConfig holds handler settings taken from the application config.
type HandlerConfig struct {
	Version string
	Timeout time.Duration

	// TopN is shown in the dashboard heading.
	TopN int
}

// Handler serves the dashboard and the JSON API.
type Handler struct {
	svc       Recommender
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler over svc.
func NewHandler(svc Recommender, cfg HandlerConfig) *Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}
	if cfg.TopN <= 0 {
		cfg.TopN = recommend.DefaultTopN
	}
	return &Handler{
		svc:       svc,
		config:    cfg,
		startTime: time.Now(),
	}
}

// recommendationRequest holds the path parameters of a recommendation call.
type recommendationRequest struct {
	Scorer string `validate:"required,scorer_name"`
	UserID string `validate:"required,number,max=18"`
}

// Users lists the selectable user ids and the registered scorers.
//
// GET /api/v1/users
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	start := time.Now()
	users := h.svc.Users()
	respondJSON(w, http.StatusOK, models.NewSuccessResponse(models.UsersResponse{
		Users:   users,
		Total:   len(users),
		Scorers: h.svc.Scorers(),
	}, time.Since(start)))
}

// Recommendations runs one scorer for one user.
//
// GET /api/v1/recommendations/{scorer}/{userID}
//
// Unknown users and scorers are 404, malformed ids are 400. A degraded
// neighbor result is a 200 with empty lists and a message.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	req := recommendationRequest{
		Scorer: chi.URLParam(r, "scorer"),
		UserID: chi.URLParam(r, "userID"),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	userID, err := strconv.Atoi(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "userID must be an integer", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	start := time.Now()
	res, err := h.svc.Recommend(ctx, req.Scorer, userID)
	if err != nil {
		status, code, message := classifyRecommendError(err)
		if status == http.StatusInternalServerError {
			respondError(w, status, code, message, err)
		} else {
			respondError(w, status, code, message, nil)
		}
		return
	}

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(toRecommendationsResponse(res), time.Since(start)))
}

// classifyRecommendError maps a scorer error to an HTTP status, error code
// and user-facing message.
func classifyRecommendError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrUnknownUser):
		return http.StatusNotFound, "USER_NOT_FOUND", "User not found"
	case errors.Is(err, recommend.ErrUnknownScorer):
		return http.StatusNotFound, "SCORER_NOT_FOUND", "Scorer not found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "Recommendation timed out"
	default:
		return http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Failed to compute recommendations"
	}
}

// HealthLive returns 200 while the process is running.
//
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, 0))
}

// HealthReady returns 200 once tables are loaded and at least one movie and
// one selectable user exist, 503 otherwise.
//
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	health := models.HealthStatus{
		Status:  "ready",
		Version: h.config.Version,
		Uptime:  int64(time.Since(h.startTime).Seconds()),
	}
	if h.svc == nil {
		health.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, models.NewSuccessResponse(health, 0))
		return
	}

	stats := h.svc.Stats()
	health.Users = stats.Users
	health.Movies = stats.Movies
	health.Genres = stats.Genres

	if stats.Movies == 0 || stats.Users == 0 {
		health.Status = "not_ready"
		logging.Ctx(r.Context()).Warn().
			Int("movies", stats.Movies).
			Int("users", stats.Users).
			Msg("Readiness check failed: tables are empty")
		respondJSON(w, http.StatusServiceUnavailable, models.NewSuccessResponse(health, 0))
		return
	}

	respondJSON(w, http.StatusOK, models.NewSuccessResponse(health, 0))
}

func toRecommendationsResponse(res *recommend.Result) models.RecommendationsResponse {
	out := models.RecommendationsResponse{
		UserID:          res.UserID,
		Scorer:          res.Scorer,
		Recommendations: make([]models.Movie, len(res.Recommendations)),
		Watched:         make([]models.WatchedMovie, len(res.Watched)),
		Message:         res.Message,
	}
	for i, rec := range res.Recommendations {
		m := models.Movie{
			ID:       rec.MovieID,
			Title:    rec.Title,
			ImageURL: rec.ImageURL,
			URL:      rec.URL,
		}
		if rec.Scored {
			score := rec.Score
			m.Score = &score
		}
		out.Recommendations[i] = m
	}
	for i, wm := range res.Watched {
		out.Watched[i] = models.WatchedMovie{ID: wm.MovieID, Title: wm.Title}
	}
	return out
}
