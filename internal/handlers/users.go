package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/moviemates/backend/internal/auth"
	"github.com/moviemates/backend/internal/logging"
	"github.com/moviemates/backend/internal/models"
	"github.com/moviemates/backend/internal/repositories"
	"github.com/moviemates/backend/internal/views"
)

// UserHandler serves user listings, profiles, and friend search.
type UserHandler struct {
	Users   UserStore
	Follows FollowStore
	Views   ViewService
}

// Home handles GET /. It reports who is logged in, mirroring the username
// the original application injected into every page.
func (h UserHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	payload := homeResponse{Status: "ok"}

	if userID, ok := auth.UserIDFrom(ctx); ok && h.Users != nil {
		if user, err := h.Users.FindByID(ctx, userID); err == nil {
			payload.Username = user.Username
		}
	}

	respondJSON(ctx, w, http.StatusOK, payload)
}

// List handles GET /list_users.
func (h UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	users, err := h.Users.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list users failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to list users"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, userListResponse{Usernames: usernames(users)})
}

// Profile handles GET /profile/{username}: account info, follow counts,
// recent activity, and the viewer's relationship to the profiled user.
func (h UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)
	username := r.PathValue("username")

	user, err := h.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Warn("profile not found", "username", username)
			redirect(w, r, "/")
			return
		}
		logger.Error("profile lookup failed", "error", err, "username", username)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load profile"})
		return
	}

	following, followers, err := h.Follows.Counts(ctx, user.ID)
	if err != nil {
		logger.Error("profile counts failed", "error", err, "username", username)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load profile"})
		return
	}

	resp := profileResponse{
		Username:       user.Username,
		FollowingCount: following,
		FollowersCount: followers,
	}

	// Recent activity degrades per entry inside the view; a store failure
	// still renders the profile shell.
	if h.Views != nil {
		activity, err := h.Views.RecentActivity(ctx, user.ID)
		if err != nil {
			logger.Warn("recent activity unavailable", "error", err, "username", username)
		} else {
			resp.RecentActivity = activity
		}
	}

	if viewerID, ok := auth.UserIDFrom(ctx); ok && viewerID != user.ID {
		isFollowing, err := h.Follows.IsFollowing(ctx, viewerID, user.ID)
		if err == nil {
			resp.IsFollowing = &isFollowing
		}
		isFollowedBy, err := h.Follows.IsFollowing(ctx, user.ID, viewerID)
		if err == nil {
			resp.IsFollowedBy = &isFollowedBy
		}
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

// Following handles GET /user/{id}/following.
func (h UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, "following")
}

// Followers handles GET /user/{id}/followers.
func (h UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.edgeList(w, r, "followers")
}

func (h UserHandler) edgeList(w http.ResponseWriter, r *http.Request, listType string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := r.PathValue("id")

	if _, err := h.Users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		logger.Error("user lookup failed", "error", err, "userId", userID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load user"})
		return
	}

	var (
		users []models.User
		err   error
	)
	switch listType {
	case "following":
		users, err = h.Follows.ListFollowing(ctx, userID)
	case "followers":
		users, err = h.Follows.ListFollowers(ctx, userID)
	}
	if err != nil {
		logger.Error("edge listing failed", "error", err, "listType", listType, "userId", userID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load " + listType})
		return
	}

	respondJSON(ctx, w, http.StatusOK, edgeListResponse{ListType: listType, Usernames: usernames(users)})
}

// Search handles /search_friends. The query may arrive as a query-string
// parameter (GET) or a form field (POST); the match is a case-insensitive
// substring on usernames.
func (h UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		redirect(w, r, "/friends")
		return
	}

	users, err := h.Users.SearchByUsername(ctx, query)
	if err != nil {
		logging.FromContext(ctx).Error("friend search failed", "error", err, "query", query)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to search users"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, friendSearchResponse{Query: query, Usernames: usernames(users)})
}

func usernames(users []models.User) []string {
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Username)
	}
	return names
}

type homeResponse struct {
	Status   string `json:"status"`
	Username string `json:"username,omitempty"`
}

type userListResponse struct {
	Usernames []string `json:"usernames"`
}

type edgeListResponse struct {
	ListType  string   `json:"list_type"`
	Usernames []string `json:"usernames"`
}

type friendSearchResponse struct {
	Query     string   `json:"query"`
	Usernames []string `json:"usernames"`
}

type profileResponse struct {
	Username       string                `json:"username"`
	FollowingCount int                   `json:"following_count"`
	FollowersCount int                   `json:"followers_count"`
	RecentActivity []views.ActivityEntry `json:"recent_activity"`
	IsFollowing    *bool                 `json:"is_following,omitempty"`
	IsFollowedBy   *bool                 `json:"is_followed_by,omitempty"`
}
