package repositories

import (
	"context"

	"github.com/moviemates/backend/internal/models"
)

// MovieTally pairs a movie with the number of interaction rows that reference it.
type MovieTally struct {
	MovieID int64
	Count   int64
}

// InteractionRepository defines data access for per-(user, movie) interaction
// records. A record is created lazily on first toggle; at most one exists per
// pair.
type InteractionRepository interface {
	// Toggle flips the flag named by action in a single atomic upsert and
	// returns the resulting record.
	Toggle(ctx context.Context, userID string, movieID int64, action models.Action) (models.Interaction, error)
	Find(ctx context.Context, userID string, movieID int64) (models.Interaction, error)
	ListForUser(ctx context.Context, userID string) ([]models.Interaction, error)
	ListWatchlist(ctx context.Context, userID string) ([]models.Interaction, error)
	// ListRecent returns the newest records by creation order; re-toggling an
	// existing record does not move it.
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Interaction, error)
	// TallyFolloweeMovies counts interaction rows per movie across every user
	// the given user follows, most-referenced first.
	TallyFolloweeMovies(ctx context.Context, userID string, limit int) ([]MovieTally, error)
}
