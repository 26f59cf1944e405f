// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names shared by both loaders.
const (
	ColUserID   = "userId"
	ColMovieID  = "movieId"
	ColTitle    = "title"
	ColImageURL = "img_url"
	ColURL      = "url"
)

// movieMetaColumns precede the genre block in the movie table.
var movieMetaColumns = []string{ColMovieID, ColTitle, ColImageURL, ColURL}

// table is a header plus string cells, the common shape produced by the
// CSV and DuckDB backends before typing.
type table struct {
	name   string
	header []string
	rows   [][]string
}

func (t *table) column(name string) int {
	for i, h := range t.header {
		if h == name {
			return i
		}
	}
	return -1
}

// build types the three raw tables and assembles a Context.
func build(profiles, movies, ratings *table) (*Context, error) {
	genres, profileRows, err := parseProfiles(profiles)
	if err != nil {
		return nil, err
	}
	movieRows, err := parseMovies(movies, genres)
	if err != nil {
		return nil, err
	}
	ratingRows, err := parseRatings(ratings)
	if err != nil {
		return nil, err
	}
	return New(genres, profileRows, movieRows, ratingRows)
}

func parseProfiles(t *table) ([]string, []Profile, error) {
	if len(t.header) == 0 || t.header[0] != ColUserID {
		return nil, nil, fmt.Errorf("%w: %s: first column must be %q", ErrSchema, t.name, ColUserID)
	}
	genres := append([]string(nil), t.header[1:]...)

	out := make([]Profile, 0, len(t.rows))
	for i, row := range t.rows {
		id, err := parseID(row[0])
		if err != nil {
			return nil, nil, cellError(t, i, ColUserID, err)
		}
		weights, err := parseFloats(row[1:])
		if err != nil {
			return nil, nil, cellError(t, i, "genre", err)
		}
		out = append(out, Profile{UserID: id, Weights: weights})
	}
	return genres, out, nil
}

func parseMovies(t *table, genres []string) ([]Movie, error) {
	if len(t.header) < len(movieMetaColumns) {
		return nil, fmt.Errorf("%w: %s: expected leading columns %v", ErrSchema, t.name, movieMetaColumns)
	}
	for i, want := range movieMetaColumns {
		if t.header[i] != want {
			return nil, fmt.Errorf("%w: %s: column %d is %q, want %q", ErrSchema, t.name, i+1, t.header[i], want)
		}
	}
	movieGenres := t.header[len(movieMetaColumns):]
	if len(movieGenres) != len(genres) {
		return nil, fmt.Errorf("%w: %s has %d genre columns, profiles have %d", ErrSchema, t.name, len(movieGenres), len(genres))
	}
	for i := range genres {
		if movieGenres[i] != genres[i] {
			return nil, fmt.Errorf("%w: %s genre column %d is %q, profiles have %q", ErrSchema, t.name, i+1, movieGenres[i], genres[i])
		}
	}

	out := make([]Movie, 0, len(t.rows))
	for i, row := range t.rows {
		id, err := parseID(row[0])
		if err != nil {
			return nil, cellError(t, i, ColMovieID, err)
		}
		values, err := parseFloats(row[len(movieMetaColumns):])
		if err != nil {
			return nil, cellError(t, i, "genre", err)
		}
		out = append(out, Movie{
			ID:       id,
			Title:    row[1],
			ImageURL: row[2],
			URL:      row[3],
			Genres:   values,
		})
	}
	return out, nil
}

func parseRatings(t *table) ([]Rating, error) {
	userCol, movieCol := t.column(ColUserID), t.column(ColMovieID)
	if userCol < 0 || movieCol < 0 {
		return nil, fmt.Errorf("%w: %s: requires %q and %q columns", ErrSchema, t.name, ColUserID, ColMovieID)
	}

	out := make([]Rating, 0, len(t.rows))
	for i, row := range t.rows {
		u, err := parseID(row[userCol])
		if err != nil {
			return nil, cellError(t, i, ColUserID, err)
		}
		m, err := parseID(row[movieCol])
		if err != nil {
			return nil, cellError(t, i, ColMovieID, err)
		}
		out = append(out, Rating{UserID: u, MovieID: m})
	}
	return out, nil
}

// parseID accepts integers and integral floats such as "12.0".
func parseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return int(f), nil
}

func parseFloats(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("invalid number %q", c)
		}
		out[i] = f
	}
	return out, nil
}

// cellError reports a 1-based data row number (header excluded).
func cellError(t *table, row int, column string, err error) error {
	return fmt.Errorf("%w: %s row %d column %s: %v", ErrSchema, t.name, row+1, column, err)
}
