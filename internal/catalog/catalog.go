// Package catalog talks to the external movie catalog API. The catalog is
// the source of truth for movie metadata; nothing here retries, paginates,
// or caches.
package catalog

import (
	"context"
	"errors"
)

// Movie is a catalog search or listing result.
type Movie struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
}

// CastMember is a single credited cast entry.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
}

// Credits holds the cast list attached to a detail lookup.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// MovieDetails is the full record returned by a by-id lookup.
type MovieDetails struct {
	Movie
	ReleaseDate string  `json:"release_date"`
	Runtime     int     `json:"runtime"`
	Credits     Credits `json:"credits"`
}

// Client resolves movie metadata from the external catalog.
type Client interface {
	GetByID(ctx context.Context, id int64) (MovieDetails, error)
	Search(ctx context.Context, query string) ([]Movie, error)
	Trending(ctx context.Context) ([]Movie, error)
	TopRated(ctx context.Context) ([]Movie, error)
}

var (
	// ErrNotFound indicates the catalog has no entry for the requested movie.
	ErrNotFound = errors.New("movie not found in catalog")
	// ErrUnavailable indicates the catalog could not be reached or answered
	// with an unexpected status.
	ErrUnavailable = errors.New("movie catalog unavailable")
)
