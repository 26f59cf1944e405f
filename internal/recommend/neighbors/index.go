// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package neighbors serves nearest-neighbor queries over a pretrained vector
// model read from a JSON file:
//
//	{
//	  "metric": "cosine",
//	  "ids": [1, 2, 3],
//	  "vectors": [[0.1, 0.9], [0.8, 0.2], [0.5, 0.5]]
//	}
//
// Queries are brute force. The query point is part of the index, so it is
// returned as its own nearest neighbor.
package neighbors

import (
	"container/heap"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinerank/internal/recommend"
)

// Supported metrics.
const (
	MetricCosine    = "cosine"
	MetricEuclidean = "euclidean"
)

// Model is the serialized form of an index.
type Model struct {
	Metric  string      `json:"metric"`
	IDs     []int       `json:"ids"`
	Vectors [][]float64 `json:"vectors"`
}

// Index answers k-nearest queries. It is immutable and safe for concurrent use.
type Index struct {
	metric  string
	ids     []int
	vectors [][]float64
	norms   []float64
	pos     map[int]int
}

// New validates m and builds an index. An empty metric selects cosine.
func New(m Model) (*Index, error) {
	metric := m.Metric
	if metric == "" {
		metric = MetricCosine
	}
	if metric != MetricCosine && metric != MetricEuclidean {
		return nil, fmt.Errorf("unsupported metric %q", m.Metric)
	}
	if len(m.IDs) != len(m.Vectors) {
		return nil, fmt.Errorf("model has %d ids but %d vectors", len(m.IDs), len(m.Vectors))
	}
	if len(m.IDs) == 0 {
		return nil, fmt.Errorf("model is empty")
	}

	dim := len(m.Vectors[0])
	idx := &Index{
		metric:  metric,
		ids:     append([]int(nil), m.IDs...),
		vectors: make([][]float64, len(m.Vectors)),
		norms:   make([]float64, len(m.Vectors)),
		pos:     make(map[int]int, len(m.IDs)),
	}
	for i, v := range m.Vectors {
		if len(v) != dim || dim == 0 {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
		if _, dup := idx.pos[m.IDs[i]]; dup {
			return nil, fmt.Errorf("duplicate id %d", m.IDs[i])
		}
		idx.pos[m.IDs[i]] = i
		idx.vectors[i] = append([]float64(nil), v...)
		idx.norms[i] = norm(v)
	}
	return idx, nil
}

// Decode reads a JSON model from r.
func Decode(r io.Reader) (*Index, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode neighbor model: %w", err)
	}
	return New(m)
}

// Load reads a JSON model file.
func Load(path string) (*Index, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open neighbor model: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Len returns the number of indexed vectors.
func (x *Index) Len() int { return len(x.ids) }

// Metric returns the distance metric name.
func (x *Index) Metric() string { return x.metric }

// Neighbors returns the k ids nearest to id, closest first. Ties keep index order.
//
// An id outside the index, k <= 0 and k larger than the index all return an
// error matching recommend.ErrInvalidValue.
func (x *Index) Neighbors(ctx context.Context, id, k int) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", recommend.ErrInvalidValue, k)
	}
	if k > len(x.ids) {
		return nil, fmt.Errorf("%w: k=%d exceeds %d indexed vectors", recommend.ErrInvalidValue, k, len(x.ids))
	}
	q, ok := x.pos[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d is not in the model", recommend.ErrInvalidValue, id)
	}

	h := make(candidateHeap, 0, k+1)
	for i := range x.vectors {
		c := candidate{pos: i, dist: x.distance(q, i)}
		if h.Len() < k {
			heap.Push(&h, c)
			continue
		}
		if c.closer(h[0]) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	out := make([]int, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		c, _ := heap.Pop(&h).(candidate)
		out[i] = x.ids[c.pos]
	}
	return out, nil
}

func (x *Index) distance(a, b int) float64 {
	va, vb := x.vectors[a], x.vectors[b]
	if x.metric == MetricEuclidean {
		var sum float64
		for i := range va {
			d := va[i] - vb[i]
			sum += d * d
		}
		return math.Sqrt(sum)
	}

	if x.norms[a] == 0 || x.norms[b] == 0 {
		return 1
	}
	var dot float64
	for i := range va {
		dot += va[i] * vb[i]
	}
	return 1 - dot/(x.norms[a]*x.norms[b])
}

func norm(v []float64) float64 {
	var sum float64
	for _, f := range v {
		sum += f * f
	}
	return math.Sqrt(sum)
}

type candidate struct {
	pos  int
	dist float64
}

// closer orders by distance, then by index position.
func (c candidate) closer(o candidate) bool {
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	return c.pos < o.pos
}

// candidateHeap is a max-heap: the root is the farthest of the kept candidates.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[j].closer(h[i]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) {
	c, _ := x.(candidate)
	*h = append(*h, c)
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
