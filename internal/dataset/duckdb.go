// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DuckDBLoader reads the tables through an in-memory DuckDB using
// read_csv_auto. Every column is read as VARCHAR so typing follows the same
// rules as the CSV backend.
type DuckDBLoader struct {
	ProfilesPath string
	MoviesPath   string
	RatingsPath  string
}

// Name returns the backend name used in logs and metrics.
func (l *DuckDBLoader) Name() string { return "duckdb" }

// Load reads and validates all three tables.
func (l *DuckDBLoader) Load(ctx context.Context) (*Context, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	tables := make([]*table, 0, 3)
	for _, path := range []string{l.ProfilesPath, l.MoviesPath, l.RatingsPath} {
		t, err := queryCSV(ctx, db, path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return build(tables[0], tables[1], tables[2])
}

func queryCSV(ctx context.Context, db *sql.DB, path string) (*table, error) {
	//nolint:gosec // path is a quoted literal, read_csv_auto does not take bind parameters
	query := "SELECT * FROM read_csv_auto(" + quoteLiteral(path) + ", header = true, all_varchar = true)"

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", path, err)
	}

	t := &table{name: filepath.Base(path), header: cols}
	cells := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		rec := make([]string, len(cols))
		for i, c := range cells {
			rec[i] = c.String
		}
		t.rows = append(t.rows, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", path, err)
	}
	return t, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
