// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package api

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cinerank/internal/config"
	"github.com/tomtom215/cinerank/internal/metrics"
	"github.com/tomtom215/cinerank/internal/middleware"
	"github.com/tomtom215/cinerank/internal/recommend"
)

func TestDashboard_FormOnly(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)

	rec := doGet(t, r, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Movies Recommendation System",
		"A Content-based Movies Recommender System Using User Profile and Movie Genres",
		"User Profile",
		"Enter User Id",
		"Show Recommendations",
		`<option value="1" selected>1</option>`,
		`<option value="3">3</option>`,
		`value="neighbors"`,
		"dev-to-uploads.s3.amazonaws.com",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if strings.Contains(body, "recommended movies") || strings.Contains(body, "no recommendations") {
		t.Error("results shown before the button was pressed")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestDashboard_Results(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		want       []string
		notWant    []string
	}{
		{
			name:       "content posters",
			query:      "?user=1&scorer=content",
			wantStatus: http.StatusOK,
			want: []string{
				"Top 20 recommended movies",
				`<img src="https://img.example/30.jpg" width="100" alt="Rush Hour">`,
				"<figcaption>Airplane!</figcaption>",
				`href="https://movies.example/40"`,
			},
			notWant: []string{"<figcaption>Heat</figcaption>"},
		},
		{
			name:       "content is the default scorer",
			query:      "?user=2",
			wantStatus: http.StatusOK,
			want:       []string{"Top 20 recommended movies", `<option value="2" selected>2</option>`},
		},
		{
			name:       "neighbors degraded",
			query:      "?user=2&scorer=neighbors",
			wantStatus: http.StatusOK,
			want:       []string{recommend.NeighborUnavailableMessage},
			notWant:    []string{"recommended movies"},
		},
		{
			name:       "nothing left to recommend",
			query:      "?user=3&scorer=neighbors",
			wantStatus: http.StatusOK,
			want:       []string{"no recommendations"},
		},
		{
			name:       "user without profile",
			query:      "?user=3&scorer=content",
			wantStatus: http.StatusNotFound,
			want:       []string{"User not found"},
		},
		{
			name:       "unknown scorer",
			query:      "?user=1&scorer=popularity",
			wantStatus: http.StatusNotFound,
			want:       []string{"Scorer not found"},
		},
		{
			name:       "bad user id",
			query:      "?user=abc",
			wantStatus: http.StatusBadRequest,
			want:       []string{"User id must be an integer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, r, "/"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := rec.Body.String()
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(body, notWant) {
					t.Errorf("body unexpectedly contains %q", notWant)
				}
			}
		})
	}
}

func TestDashboard_CSPNonce(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)
	rec := doGet(t, r, "/")

	csp := rec.Header().Get("Content-Security-Policy")
	m := regexp.MustCompile(`'nonce-([^']+)'`).FindStringSubmatch(csp)
	if m == nil {
		t.Fatalf("CSP has no nonce: %q", csp)
	}
	if !strings.Contains(rec.Body.String(), `<style nonce="`+m[1]+`">`) {
		t.Error("style tag nonce does not match the CSP header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("X-Frame-Options not set")
	}

	again := doGet(t, r, "/")
	if again.Header().Get("Content-Security-Policy") == csp {
		t.Error("nonce must change per request")
	}
}

func TestRouter_RequestID(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "trace-abc-123" {
		t.Errorf("X-Request-ID = %q, want trace-abc-123", got)
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)

	rec := doGet(t, r, "/api/v2/nothing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", env.Error)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/recommendations/{scorer}/{userID}", "200")
	before := testutil.ToFloat64(counter)
	doGet(t, r, "/api/v1/recommendations/content/1")
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", got)
	}

	rec := doGet(t, r, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", rec.Code)
	}
	for _, name := range []string{"api_requests_total", "recommendation_requests_total"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("/metrics missing %s", name)
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := ChiMiddlewareConfigFrom(config.SecurityConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	})
	r := newTestRouter(t, newTestService(t, nil), cfg)

	for i := 0; i < 2; i++ {
		if rec := doGet(t, r, "/api/v1/users"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := doGet(t, r, "/api/v1/users")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Error == nil || env.Error.Code != "RATE_LIMITED" {
		t.Errorf("error = %+v, want RATE_LIMITED", env.Error)
	}
	if rec := doGet(t, r, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health probes must not be rate limited, got %d", rec.Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	cfg := ChiMiddlewareConfigFrom(config.SecurityConfig{
		CORSOrigins:       []string{"https://dash.example"},
		RateLimitDisabled: true,
	})
	r := newTestRouter(t, newTestService(t, nil), cfg)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/users", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_Compression(t *testing.T) {
	r := newTestRouter(t, newTestService(t, nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
	}
}

func TestChiMiddlewareConfigFrom_Defaults(t *testing.T) {
	cfg := ChiMiddlewareConfigFrom(config.SecurityConfig{})
	def := DefaultChiMiddlewareConfig()
	if cfg.RateLimitRequests != def.RateLimitRequests || cfg.RateLimitWindow != def.RateLimitWindow {
		t.Errorf("zero security config should keep defaults, got %d/%v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Errorf("CORS origins = %v, want none", cfg.CORSAllowedOrigins)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}

func TestGenerateETag(t *testing.T) {
	a, b := generateETag([]byte("one")), generateETag([]byte("two"))
	if a == b {
		t.Error("different payloads share an ETag")
	}
	if a != generateETag([]byte("one")) {
		t.Error("ETag is not stable")
	}
	if !strings.HasPrefix(a, `W/"`) {
		t.Errorf("ETag %q is not a weak validator", a)
	}
}
