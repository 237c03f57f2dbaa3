package handlers

import (
	"context"

	"github.com/moviemates/backend/internal/models"
	"github.com/moviemates/backend/internal/repositories"
	"github.com/moviemates/backend/internal/views"
)

// UserStore captures the persistence operations required by the handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SearchByUsername(ctx context.Context, query string) ([]models.User, error)
}

// SessionManager issues and revokes session tokens for users.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionToken, error)
	Revoke(ctx context.Context, token string)
}

// FollowStore captures operations on the directed follow graph.
type FollowStore interface {
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowing(ctx context.Context, userID string) ([]models.User, error)
	ListFollowers(ctx context.Context, userID string) ([]models.User, error)
	Counts(ctx context.Context, userID string) (following int, followers int, err error)
}

// InteractionStore captures persistence for per-(user, movie) interactions.
type InteractionStore interface {
	Toggle(ctx context.Context, userID string, movieID int64, action models.Action) (models.Interaction, error)
	Find(ctx context.Context, userID string, movieID int64) (models.Interaction, error)
	ListForUser(ctx context.Context, userID string) ([]models.Interaction, error)
	ListWatchlist(ctx context.Context, userID string) ([]models.Interaction, error)
}

// ViewService computes the derived read-only views.
type ViewService interface {
	TopAmongFollowees(ctx context.Context, userID string) ([]views.RankedMovie, error)
	RecentActivity(ctx context.Context, userID string) ([]views.ActivityEntry, error)
}

var _ InteractionStore = (*repositories.PostgresInteractionRepository)(nil)
var _ FollowStore = (*repositories.PostgresFollowRepository)(nil)
var _ UserStore = (*repositories.PostgresUserRepository)(nil)
