package handlers

import (
	"errors"
	"net/http"

	"github.com/moviemates/backend/internal/auth"
	"github.com/moviemates/backend/internal/logging"
	"github.com/moviemates/backend/internal/repositories"
)

// FollowHandler mutates the follow graph.
type FollowHandler struct {
	Users   UserStore
	Follows FollowStore
}

// followOp enumerates the two edge mutations so mutate never dispatches on
// raw strings.
type followOp int

const (
	opFollow followOp = iota
	opUnfollow
)

func (op followOp) String() string {
	if op == opUnfollow {
		return "unfollow"
	}
	return "follow"
}

// Follow handles POST /follow/{username}. Following an already-followed user
// has the effect of one follow.
func (h FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, opFollow)
}

// Unfollow handles POST /unfollow/{username}. Unfollowing a user who was
// never followed is a no-op.
func (h FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, opUnfollow)
}

func (h FollowHandler) mutate(w http.ResponseWriter, r *http.Request, op followOp) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Users == nil || h.Follows == nil {
		logger.Error("follow dependencies unavailable", "hasUsers", h.Users != nil, "hasFollows", h.Follows != nil)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "follow services unavailable"})
		return
	}

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	username := r.PathValue("username")
	target, err := h.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Warn("follow target not found", "username", username)
			redirect(w, r, "/")
			return
		}
		logger.Error("follow target lookup failed", "error", err, "username", username)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to look up user"})
		return
	}

	if target.ID == userID {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "you cannot " + op.String() + " yourself"})
		return
	}

	switch op {
	case opFollow:
		err = h.Follows.Follow(ctx, userID, target.ID)
	case opUnfollow:
		err = h.Follows.Unfollow(ctx, userID, target.ID)
	}
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidEdge):
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid follow target"})
		case errors.Is(err, repositories.ErrNotFound):
			logger.Warn("follow edge endpoint missing", "username", username)
			redirect(w, r, "/")
		default:
			logger.Error("follow mutation failed", "error", err, "op", op.String(), "username", username)
			respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update follow state"})
		}
		return
	}

	redirect(w, r, "/profile/"+username)
}
