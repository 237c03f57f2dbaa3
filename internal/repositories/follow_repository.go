package repositories

import (
	"context"

	"github.com/moviemates/backend/internal/models"
)

// FollowRepository defines data access for the directed follow graph.
// Follow and Unfollow are idempotent: repeating a call has the effect of one.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowing(ctx context.Context, userID string) ([]models.User, error)
	ListFollowers(ctx context.Context, userID string) ([]models.User, error)
	Counts(ctx context.Context, userID string) (following int, followers int, err error)
}
