// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package neighbors

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/cinerank/internal/recommend"
)

const sampleModel = `{
  "metric": "cosine",
  "ids": [1, 2, 3, 4, 5],
  "vectors": [
    [1, 0, 0],
    [0.9, 0.1, 0],
    [0, 1, 0],
    [0, 0.9, 0.1],
    [0.5, 0.5, 0]
  ]
}`

func mustDecode(t *testing.T, s string) *Index {
	t.Helper()
	idx, err := Decode(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return idx
}

func TestIndex_NeighborsCosine(t *testing.T) {
	idx := mustDecode(t, sampleModel)

	tests := []struct {
		id   int
		k    int
		want []int
	}{
		{id: 1, k: 1, want: []int{1}},
		{id: 1, k: 3, want: []int{1, 2, 5}},
		{id: 3, k: 2, want: []int{3, 4}},
		{id: 5, k: 5, want: []int{5, 2, 1, 3, 4}},
	}
	for _, tt := range tests {
		got, err := idx.Neighbors(context.Background(), tt.id, tt.k)
		if err != nil {
			t.Fatalf("Neighbors(%d, %d) error: %v", tt.id, tt.k, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Neighbors(%d, %d) = %v, want %v", tt.id, tt.k, got, tt.want)
		}
	}
}

func TestIndex_NeighborsEuclidean(t *testing.T) {
	idx, err := New(Model{
		Metric:  MetricEuclidean,
		IDs:     []int{10, 20, 30, 40},
		Vectors: [][]float64{{0, 0}, {3, 4}, {1, 0}, {0, 2}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := idx.Neighbors(context.Background(), 10, 3)
	if err != nil {
		t.Fatalf("Neighbors() error: %v", err)
	}
	if want := []int{10, 30, 40}; !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors() = %v, want %v", got, want)
	}
}

func TestIndex_TiesKeepIndexOrder(t *testing.T) {
	idx, err := New(Model{
		IDs:     []int{7, 8, 9, 6},
		Vectors: [][]float64{{2, 0}, {1, 0}, {3, 0}, {4, 0}},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if idx.Metric() != MetricCosine {
		t.Errorf("Metric() = %q, want default cosine", idx.Metric())
	}

	got, err := idx.Neighbors(context.Background(), 9, 3)
	if err != nil {
		t.Fatalf("Neighbors() error: %v", err)
	}
	if want := []int{7, 8, 9}; !reflect.DeepEqual(got, want) {
		t.Errorf("Neighbors() = %v, want %v", got, want)
	}
}

func TestIndex_InvalidValue(t *testing.T) {
	idx := mustDecode(t, sampleModel)

	tests := []struct {
		name string
		id   int
		k    int
	}{
		{"unknown id", 99, 2},
		{"zero k", 1, 0},
		{"negative k", 1, -3},
		{"k larger than index", 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := idx.Neighbors(context.Background(), tt.id, tt.k)
			if !errors.Is(err, recommend.ErrInvalidValue) {
				t.Errorf("Neighbors() error = %v, want ErrInvalidValue", err)
			}
		})
	}
}

func TestIndex_CanceledContext(t *testing.T) {
	idx := mustDecode(t, sampleModel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := idx.Neighbors(ctx, 1, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Neighbors() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, recommend.ErrInvalidValue) {
		t.Error("cancellation must not be reported as a value error")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		model Model
	}{
		{"empty", Model{}},
		{"length mismatch", Model{IDs: []int{1, 2}, Vectors: [][]float64{{1}}}},
		{"ragged vectors", Model{IDs: []int{1, 2}, Vectors: [][]float64{{1, 0}, {1}}}},
		{"zero dimension", Model{IDs: []int{1}, Vectors: [][]float64{{}}}},
		{"duplicate id", Model{IDs: []int{1, 1}, Vectors: [][]float64{{1}, {2}}}},
		{"unknown metric", Model{Metric: "manhattan", IDs: []int{1}, Vectors: [][]float64{{1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.model); err == nil {
				t.Error("New() expected error, got nil")
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"ids": [1, 2`)); err == nil {
		t.Error("Decode() of truncated JSON should fail")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knn_model.json")
	if err := os.WriteFile(path, []byte(sampleModel), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	idx, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if idx.Len() != 5 {
		t.Errorf("Len() = %d, want 5", idx.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestIndex_ConcurrentQueries(t *testing.T) {
	idx := mustDecode(t, sampleModel)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := idx.Neighbors(context.Background(), id, 3); err != nil {
				t.Errorf("Neighbors(%d) error: %v", id, err)
			}
		}(i%5 + 1)
	}
	wg.Wait()
}

func TestIndex_SatisfiesQuerier(t *testing.T) {
	var _ recommend.NeighborQuerier = mustDecode(t, sampleModel)
}
