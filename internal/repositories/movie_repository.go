package repositories

import (
	"context"

	"github.com/moviemates/backend/internal/models"
)

// MovieRepository maintains the local mirror of catalog entries. The mirror
// is write-through only; reads for display always go to the catalog.
type MovieRepository interface {
	Upsert(ctx context.Context, movie models.Movie) error
	Find(ctx context.Context, id int64) (models.Movie, error)
}
