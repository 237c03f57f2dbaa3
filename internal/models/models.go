package models

import (
	"fmt"
	"time"
)

// User represents an account within the MovieMates platform.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Movie is a local mirror of a catalog entry. The external catalog remains
// the source of truth at read time.
type Movie struct {
	ID         int64
	Title      string
	PosterPath string
}

// Interaction records the three independent flags a user can set on a movie.
// At most one row exists per (UserID, MovieID) pair.
type Interaction struct {
	ID        int64
	UserID    string
	MovieID   int64
	Watched   bool
	Liked     bool
	Watchlist bool
	CreatedAt time.Time
}

// FollowEdge is a directed relationship: follower observes followed's activity.
type FollowEdge struct {
	FollowerID string
	FollowedID string
	CreatedAt  time.Time
}

// SessionToken is the opaque credential issued to an authenticated user.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// Action enumerates the interaction flags a user can toggle on a movie.
type Action int

const (
	ActionWatch Action = iota
	ActionLike
	ActionWatchlist
)

// ParseAction maps a wire-level action name to its Action variant. Unknown
// names are rejected so nothing past the boundary ever sees them.
func ParseAction(name string) (Action, error) {
	switch name {
	case "watch":
		return ActionWatch, nil
	case "like":
		return ActionLike, nil
	case "watchlist":
		return ActionWatchlist, nil
	default:
		return 0, fmt.Errorf("unknown action %q", name)
	}
}

// String returns the wire-level name for the action.
func (a Action) String() string {
	switch a {
	case ActionWatch:
		return "watch"
	case ActionLike:
		return "like"
	case ActionWatchlist:
		return "watchlist"
	default:
		return "unknown"
	}
}
