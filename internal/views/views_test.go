package views

import (
	"context"
	"errors"
	"testing"

	"github.com/moviemates/backend/internal/catalog"
	"github.com/moviemates/backend/internal/models"
	"github.com/moviemates/backend/internal/repositories"
)

type stubInteractions struct {
	recent  []models.Interaction
	tallies []repositories.MovieTally
	err     error
}

func (s *stubInteractions) ListRecent(context.Context, string, int) ([]models.Interaction, error) {
	return s.recent, s.err
}

func (s *stubInteractions) TallyFolloweeMovies(context.Context, string, int) ([]repositories.MovieTally, error) {
	return s.tallies, s.err
}

type stubCatalog struct {
	movies map[int64]catalog.MovieDetails
	calls  int
}

func (s *stubCatalog) GetByID(_ context.Context, id int64) (catalog.MovieDetails, error) {
	s.calls++
	details, ok := s.movies[id]
	if !ok {
		return catalog.MovieDetails{}, catalog.ErrNotFound
	}
	return details, nil
}

func (s *stubCatalog) Search(context.Context, string) ([]catalog.Movie, error) {
	return nil, catalog.ErrUnavailable
}

func (s *stubCatalog) Trending(context.Context) ([]catalog.Movie, error) {
	return nil, catalog.ErrUnavailable
}

func (s *stubCatalog) TopRated(context.Context) ([]catalog.Movie, error) {
	return nil, catalog.ErrUnavailable
}

type recordingMirror struct {
	upserts []models.Movie
}

func (m *recordingMirror) Upsert(_ context.Context, movie models.Movie) error {
	m.upserts = append(m.upserts, movie)
	return nil
}

func details(id int64, title, poster string) catalog.MovieDetails {
	return catalog.MovieDetails{Movie: catalog.Movie{ID: id, Title: title, PosterPath: poster}}
}

func TestTopAmongFollowees(t *testing.T) {
	interactions := &stubInteractions{tallies: []repositories.MovieTally{
		{MovieID: 100, Count: 3},
		{MovieID: 200, Count: 1},
	}}
	cat := &stubCatalog{movies: map[int64]catalog.MovieDetails{
		100: details(100, "Shared Favourite", "/fav.jpg"),
		200: details(200, "Also Seen", "/seen.jpg"),
	}}
	mirror := &recordingMirror{}

	svc := NewService(interactions, cat, mirror)

	ranked, err := svc.TopAmongFollowees(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("top among followees: %v", err)
	}

	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %+v", ranked)
	}
	if ranked[0].MovieID != 100 || ranked[0].Title != "Shared Favourite" || ranked[0].Count != 3 {
		t.Fatalf("unexpected top entry: %+v", ranked[0])
	}
	if len(mirror.upserts) != 2 {
		t.Fatalf("expected mirror refresh per resolution, got %+v", mirror.upserts)
	}
}

func TestTopAmongFolloweesNoFollowees(t *testing.T) {
	cat := &stubCatalog{}
	svc := NewService(&stubInteractions{}, cat, nil)

	ranked, err := svc.TopAmongFollowees(context.Background(), "loner")
	if err != nil {
		t.Fatalf("top among followees: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected empty view, got %+v", ranked)
	}
	if cat.calls != 0 {
		t.Fatalf("expected no catalog calls for a user with no followees, got %d", cat.calls)
	}
}

func TestTopAmongFolloweesDegradesPerEntry(t *testing.T) {
	interactions := &stubInteractions{tallies: []repositories.MovieTally{
		{MovieID: 100, Count: 2},
		{MovieID: 999, Count: 1},
	}}
	cat := &stubCatalog{movies: map[int64]catalog.MovieDetails{
		100: details(100, "Resolvable", "/ok.jpg"),
	}}

	svc := NewService(interactions, cat, nil)

	ranked, err := svc.TopAmongFollowees(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("expected degraded view, got error %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected both entries, got %+v", ranked)
	}
	if ranked[1].Title != "Unknown Title" || ranked[1].Count != 1 {
		t.Fatalf("expected placeholder for unresolvable movie, got %+v", ranked[1])
	}
}

func TestRecentActivity(t *testing.T) {
	interactions := &stubInteractions{recent: []models.Interaction{
		{MovieID: 200, Watched: true, Liked: false, Watchlist: true},
		{MovieID: 100, Watched: false, Liked: true, Watchlist: false},
	}}
	cat := &stubCatalog{movies: map[int64]catalog.MovieDetails{
		100: details(100, "Older Pick", "/old.jpg"),
		200: details(200, "Newer Pick", "/new.jpg"),
	}}

	svc := NewService(interactions, cat, nil)

	entries, err := svc.RecentActivity(context.Background(), "viewer")
	if err != nil {
		t.Fatalf("recent activity: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].MovieID != 200 || !entries[0].Watched || !entries[0].Watchlist || entries[0].Liked {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Title != "Older Pick" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestRecentActivityStoreError(t *testing.T) {
	svc := NewService(&stubInteractions{err: errors.New("db down")}, &stubCatalog{}, nil)
	if _, err := svc.RecentActivity(context.Background(), "viewer"); err == nil {
		t.Fatal("expected error when the store fails")
	}
}
