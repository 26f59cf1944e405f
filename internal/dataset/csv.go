// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVLoader reads the tables with encoding/csv.
type CSVLoader struct {
	ProfilesPath string
	MoviesPath   string
	RatingsPath  string
}

// Name returns the backend name used in logs and metrics.
func (l *CSVLoader) Name() string { return "csv" }

// Load reads and validates all three tables.
func (l *CSVLoader) Load(ctx context.Context) (*Context, error) {
	tables := make([]*table, 0, 3)
	for _, path := range []string{l.ProfilesPath, l.MoviesPath, l.RatingsPath} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := readCSVFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return build(tables[0], tables[1], tables[2])
}

func readCSVFile(path string) (*table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	t, err := readCSV(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// readCSV parses a header row followed by data rows of the same width.
func readCSV(r io.Reader, name string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", ErrSchema, name)
	}
	if err != nil {
		return nil, err
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &table{name: name, header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}
