// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/tomtom215/cinerank/internal/logging"
	"github.com/tomtom215/cinerank/internal/recommend"
)

// BannerURL is the header image shown above the results.
const BannerURL = "https://res.cloudinary.com/practicaldev/image/fetch/s--hGvhAGUu--/c_imagga_scale,f_auto,fl_progressive," +
	"h_500,q_auto,w_1000/https://dev-to-uploads.s3.amazonaws.com/i/mih10uhu1464fx1kr0by.jpg"

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// dashboardMovie is one poster in the result grid.
type dashboardMovie struct {
	Title    string
	ImageURL string
	URL      string
}

type dashboardPage struct {
	Nonce     string
	BannerURL string
	TopN      int

	Users          []int
	Scorers        []string
	SelectedUser   int
	SelectedScorer string

	// Submitted is true once a user was chosen and the button pressed.
	Submitted bool
	Movies    []dashboardMovie
	Message   string
	Error     string
}

// Dashboard renders the HTML page. Without a user query parameter it shows
// only the form. With ?user=<id>&scorer=<name> it runs the scorer and shows
// posters, the degraded-result message, "no recommendations" or an error.
//
// GET /
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	page := dashboardPage{
		Nonce:          cspNonce(r.Context()),
		BannerURL:      BannerURL,
		TopN:           h.config.TopN,
		Users:          h.svc.Users(),
		Scorers:        h.svc.Scorers(),
		SelectedScorer: recommend.ScorerContent,
	}
	if len(page.Users) > 0 {
		page.SelectedUser = page.Users[0]
	}

	status := http.StatusOK
	query := r.URL.Query()
	if scorer := query.Get("scorer"); scorer != "" {
		page.SelectedScorer = scorer
	}
	if raw := query.Get("user"); raw != "" {
		page.Submitted = true
		status = h.fillResults(r.Context(), &page, raw)
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to render dashboard")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write dashboard")
	}
}

// fillResults runs the selected scorer and returns the response status.
func (h *Handler) fillResults(ctx context.Context, page *dashboardPage, rawUser string) int {
	userID, err := strconv.Atoi(rawUser)
	if err != nil {
		page.Error = "User id must be an integer"
		return http.StatusBadRequest
	}
	page.SelectedUser = userID

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	res, err := h.svc.Recommend(ctx, page.SelectedScorer, userID)
	if err != nil {
		status, code, message := classifyRecommendError(err)
		if status == http.StatusInternalServerError {
			logging.Ctx(ctx).Error().Str("code", code).Err(err).Msg("Dashboard recommendation failed")
		}
		page.Error = message
		return status
	}

	page.Message = res.Message
	page.Movies = make([]dashboardMovie, len(res.Recommendations))
	for i, rec := range res.Recommendations {
		page.Movies[i] = dashboardMovie{Title: rec.Title, ImageURL: rec.ImageURL, URL: rec.URL}
	}
	return http.StatusOK
}
