// Package views computes read-only aggregations over the follow graph and
// the interaction store, resolving movie metadata through the catalog.
package views

import (
	"context"

	"github.com/moviemates/backend/internal/catalog"
	"github.com/moviemates/backend/internal/logging"
	"github.com/moviemates/backend/internal/models"
	"github.com/moviemates/backend/internal/repositories"
)

// placeholderTitle stands in for a movie the catalog could not resolve. A
// single failed lookup degrades that entry, never the whole view.
const placeholderTitle = "Unknown Title"

const topMoviesLimit = 10
const recentActivityLimit = 10

// RankedMovie is one entry of the top-movies-among-followees view.
type RankedMovie struct {
	MovieID    int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
	Count      int64  `json:"count"`
}

// ActivityEntry is one entry of the recent-activity view: a resolved movie
// plus the three interaction flags.
type ActivityEntry struct {
	MovieID    int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
	Watched    bool   `json:"watched"`
	Liked      bool   `json:"liked"`
	Watchlist  bool   `json:"watchlist"`
}

// InteractionSource is the slice of the interaction store the views read.
type InteractionSource interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Interaction, error)
	TallyFolloweeMovies(ctx context.Context, userID string, limit int) ([]repositories.MovieTally, error)
}

// MovieMirror receives write-through copies of resolved catalog entries.
type MovieMirror interface {
	Upsert(ctx context.Context, movie models.Movie) error
}

// Service computes the aggregation views.
type Service struct {
	Interactions InteractionSource
	Catalog      catalog.Client
	Mirror       MovieMirror
}

// NewService constructs the aggregation view service. The mirror is optional.
func NewService(interactions InteractionSource, cat catalog.Client, mirror MovieMirror) *Service {
	return &Service{Interactions: interactions, Catalog: cat, Mirror: mirror}
}

// TopAmongFollowees returns the ten movies with the most interaction rows
// across everyone the user follows. Every row counts, whatever its flags.
// A user with no followees gets an empty result without any catalog calls.
func (s *Service) TopAmongFollowees(ctx context.Context, userID string) ([]RankedMovie, error) {
	ctx, span := logging.StartSpan(ctx, "views.top_among_followees")
	defer span.End()

	tallies, err := s.Interactions.TallyFolloweeMovies(ctx, userID, topMoviesLimit)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedMovie, 0, len(tallies))
	for _, tally := range tallies {
		entry := RankedMovie{MovieID: tally.MovieID, Count: tally.Count}
		if details, err := s.resolve(ctx, tally.MovieID); err != nil {
			logging.FromContext(ctx).Warn("catalog lookup failed, using placeholder",
				"movieId", tally.MovieID, "error", err)
			entry.Title = placeholderTitle
		} else {
			entry.Title = details.Title
			entry.PosterPath = details.PosterPath
		}
		ranked = append(ranked, entry)
	}

	return ranked, nil
}

// RecentActivity returns the user's ten newest interaction records in
// creation order, each resolved to catalog metadata plus its flags.
func (s *Service) RecentActivity(ctx context.Context, userID string) ([]ActivityEntry, error) {
	ctx, span := logging.StartSpan(ctx, "views.recent_activity")
	defer span.End()

	records, err := s.Interactions.ListRecent(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(records))
	for _, record := range records {
		entry := ActivityEntry{
			MovieID:   record.MovieID,
			Watched:   record.Watched,
			Liked:     record.Liked,
			Watchlist: record.Watchlist,
		}
		if details, err := s.resolve(ctx, record.MovieID); err != nil {
			logging.FromContext(ctx).Warn("catalog lookup failed, using placeholder",
				"movieId", record.MovieID, "error", err)
			entry.Title = placeholderTitle
		} else {
			entry.Title = details.Title
			entry.PosterPath = details.PosterPath
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// resolve fetches catalog details and refreshes the local mirror on success.
func (s *Service) resolve(ctx context.Context, movieID int64) (catalog.MovieDetails, error) {
	details, err := s.Catalog.GetByID(ctx, movieID)
	if err != nil {
		return catalog.MovieDetails{}, err
	}

	if s.Mirror != nil {
		if err := s.Mirror.Upsert(ctx, models.Movie{
			ID:         details.ID,
			Title:      details.Title,
			PosterPath: details.PosterPath,
		}); err != nil {
			logging.FromContext(ctx).Warn("movie mirror refresh failed", "movieId", movieID, "error", err)
		}
	}

	return details, nil
}
