// Cinerank - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

// Package dataset loads the three read-only tables the scorers work on and
// exposes them as an immutable Context.
//
// Tables:
//
//	profiles.csv       userId,<genre_1>,...,<genre_n>
//	movies_genres.csv  movieId,title,img_url,url,<genre_1>,...,<genre_n>
//	ratings.csv        ...,userId,...,movieId,...
//
// The genre columns of the profile and movie tables must match by name and
// position. A Context is built once at startup and is safe for concurrent
// readers because nothing mutates it afterwards.
package dataset

import (
	"errors"
	"fmt"
)

// ErrSchema is returned when a table header or cell does not match the expected layout.
var ErrSchema = errors.New("dataset schema error")

// Movie is one row of the movie table.
// Genres is aligned with Context.Genres and must not be modified.
type Movie struct {
	ID       int
	Title    string
	ImageURL string
	URL      string
	Genres   []float64
}

// Rating is one (user, movie) watch event.
type Rating struct {
	UserID  int
	MovieID int
}

// Profile is one row of the profile table.
type Profile struct {
	UserID  int
	Weights []float64
}

// Stats summarizes table sizes.
type Stats struct {
	Profiles int
	Movies   int
	Ratings  int
	Genres   int
	Users    int
}

// Context holds the loaded tables.
type Context struct {
	genres     []string
	movies     []Movie
	movieIndex map[int]int
	profiles   map[int][]float64
	users      []int
	watched    map[int]map[int]struct{}
	ratings    int
}

// New validates the tables and builds a Context.
//
// Users are taken from the ratings in first-appearance order. Ratings that
// reference movies absent from the movie table are kept in the watch history
// but never surface in results.
func New(genres []string, profiles []Profile, movies []Movie, ratings []Rating) (*Context, error) {
	c := &Context{
		genres:     append([]string(nil), genres...),
		movies:     make([]Movie, 0, len(movies)),
		movieIndex: make(map[int]int, len(movies)),
		profiles:   make(map[int][]float64, len(profiles)),
		watched:    make(map[int]map[int]struct{}),
		ratings:    len(ratings),
	}

	for _, p := range profiles {
		if len(p.Weights) != len(genres) {
			return nil, fmt.Errorf("%w: profile for user %d has %d weights, want %d", ErrSchema, p.UserID, len(p.Weights), len(genres))
		}
		if _, dup := c.profiles[p.UserID]; dup {
			return nil, fmt.Errorf("%w: duplicate profile for user %d", ErrSchema, p.UserID)
		}
		c.profiles[p.UserID] = append([]float64(nil), p.Weights...)
	}

	for _, m := range movies {
		if len(m.Genres) != len(genres) {
			return nil, fmt.Errorf("%w: movie %d has %d genre values, want %d", ErrSchema, m.ID, len(m.Genres), len(genres))
		}
		if _, dup := c.movieIndex[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate movie id %d", ErrSchema, m.ID)
		}
		m.Genres = append([]float64(nil), m.Genres...)
		c.movieIndex[m.ID] = len(c.movies)
		c.movies = append(c.movies, m)
	}

	for _, r := range ratings {
		seen, ok := c.watched[r.UserID]
		if !ok {
			seen = make(map[int]struct{})
			c.watched[r.UserID] = seen
			c.users = append(c.users, r.UserID)
		}
		seen[r.MovieID] = struct{}{}
	}

	return c, nil
}

// Genres returns the genre axis names in column order.
func (c *Context) Genres() []string {
	return append([]string(nil), c.genres...)
}

// Movies returns all movies in table order. The slice is shared; do not modify it.
func (c *Context) Movies() []Movie {
	return c.movies
}

// Movie looks up a movie by id.
func (c *Context) Movie(id int) (Movie, bool) {
	i, ok := c.movieIndex[id]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Profile returns the preference vector of a user. The slice is shared; do not modify it.
func (c *Context) Profile(userID int) ([]float64, bool) {
	p, ok := c.profiles[userID]
	return p, ok
}

// HasWatched reports whether the ratings table links userID to movieID.
func (c *Context) HasWatched(userID, movieID int) bool {
	_, ok := c.watched[userID][movieID]
	return ok
}

// Users returns the selectable user ids in ratings first-appearance order.
func (c *Context) Users() []int {
	return append([]int(nil), c.users...)
}

// Stats returns table sizes.
func (c *Context) Stats() Stats {
	return Stats{
		Profiles: len(c.profiles),
		Movies:   len(c.movies),
		Ratings:  c.ratings,
		Genres:   len(c.genres),
		Users:    len(c.users),
	}
}
