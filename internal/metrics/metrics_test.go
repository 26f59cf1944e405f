// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/users", "200"))

	RecordAPIRequest("GET", "/api/v1/users", "200", 3*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/users", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/users", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total delta = %v, want 2", after-before)
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("api_active_requests = %v, want %v", got, start)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		scorer  string
		outcome string
		size    int
	}{
		{"content success", "content", OutcomeSuccess, 20},
		{"neighbors empty", "neighbors", OutcomeEmpty, 0},
		{"neighbors degraded", "neighbors", OutcomeDegraded, 0},
		{"unknown user", "content", OutcomeUnknownUser, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := RecommendationRequests.WithLabelValues(tt.scorer, tt.outcome)
			before := testutil.ToFloat64(c)
			RecordRecommendation(tt.scorer, tt.outcome, tt.size, time.Millisecond)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("recommendation_requests_total delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad("csv", 3, 7, 11, 5, 20*time.Millisecond)

	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("movies")); got != 7 {
		t.Errorf("dataset_rows{movies} = %v, want 7", got)
	}
	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("ratings")); got != 11 {
		t.Errorf("dataset_rows{ratings} = %v, want 11", got)
	}
	if got := testutil.ToFloat64(DatasetGenres); got != 5 {
		t.Errorf("dataset_genres = %v, want 5", got)
	}
}

func TestSetAppInfo(t *testing.T) {
	started := time.Unix(1_700_000_000, 0)
	SetAppInfo("test", started)

	if got := testutil.ToFloat64(AppInfo.WithLabelValues("test")); got != 1 {
		t.Errorf("app_info = %v, want 1", got)
	}
	if got := testutil.ToFloat64(AppStartTime); got != 1_700_000_000 {
		t.Errorf("app_start_time_seconds = %v", got)
	}
}
