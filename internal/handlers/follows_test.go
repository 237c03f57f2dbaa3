package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moviemates/backend/internal/auth"
	"github.com/moviemates/backend/internal/models"
	"github.com/moviemates/backend/internal/repositories"
)

type inMemoryFollowStore struct {
	users *inMemoryUserStore
	edges map[string]map[string]bool
}

func newInMemoryFollowStore(users *inMemoryUserStore) *inMemoryFollowStore {
	return &inMemoryFollowStore{users: users, edges: make(map[string]map[string]bool)}
}

func (s *inMemoryFollowStore) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return repositories.ErrInvalidEdge
	}
	if _, err := s.users.FindByID(ctx, followedID); err != nil {
		return repositories.ErrNotFound
	}
	if s.edges[followerID] == nil {
		s.edges[followerID] = make(map[string]bool)
	}
	s.edges[followerID][followedID] = true
	return nil
}

func (s *inMemoryFollowStore) Unfollow(_ context.Context, followerID, followedID string) error {
	delete(s.edges[followerID], followedID)
	return nil
}

func (s *inMemoryFollowStore) IsFollowing(_ context.Context, followerID, followedID string) (bool, error) {
	return s.edges[followerID][followedID], nil
}

func (s *inMemoryFollowStore) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	for id := range s.edges[userID] {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *inMemoryFollowStore) ListFollowers(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	for follower, followed := range s.edges {
		if followed[userID] {
			user, err := s.users.FindByID(ctx, follower)
			if err != nil {
				return nil, err
			}
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *inMemoryFollowStore) Counts(_ context.Context, userID string) (int, int, error) {
	following := len(s.edges[userID])
	followers := 0
	for _, followed := range s.edges {
		if followed[userID] {
			followers++
		}
	}
	return following, followers, nil
}

func followRequest(userID, target string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/follow/"+target, nil)
	req.SetPathValue("username", target)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	return req
}

func TestFollowHandlerFollowIsIdempotent(t *testing.T) {
	users := newInMemoryUserStore()
	alice := users.add(t, "alice", "alice@example.com", "password123")
	users.add(t, "bob", "bob@example.com", "password123")
	follows := newInMemoryFollowStore(users)
	handler := FollowHandler{Users: users, Follows: follows}

	for range 2 {
		rec := httptest.NewRecorder()
		handler.Follow(rec, followRequest(alice.ID, "bob"))

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect got %d: %s", rec.Code, rec.Body.String())
		}
		if loc := rec.Header().Get("Location"); loc != "/profile/bob" {
			t.Fatalf("expected redirect to /profile/bob got %q", loc)
		}
	}

	following, _, err := follows.Counts(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if following != 1 {
		t.Fatalf("expected exactly one edge after double follow, got %d", following)
	}
}

func TestFollowHandlerSelfFollow(t *testing.T) {
	users := newInMemoryUserStore()
	alice := users.add(t, "alice", "alice@example.com", "password123")
	follows := newInMemoryFollowStore(users)
	handler := FollowHandler{Users: users, Follows: follows}

	rec := httptest.NewRecorder()
	handler.Follow(rec, followRequest(alice.ID, "alice"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}

	following, _, err := follows.Counts(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if following != 0 {
		t.Fatal("self-follow must not create an edge")
	}
}

func TestFollowHandlerRequiresLogin(t *testing.T) {
	users := newInMemoryUserStore()
	users.add(t, "bob", "bob@example.com", "password123")
	handler := FollowHandler{Users: users, Follows: newInMemoryFollowStore(users)}

	rec := httptest.NewRecorder()
	handler.Follow(rec, followRequest("", "bob"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %q", loc)
	}
}

func TestFollowHandlerUnknownTarget(t *testing.T) {
	users := newInMemoryUserStore()
	alice := users.add(t, "alice", "alice@example.com", "password123")
	handler := FollowHandler{Users: users, Follows: newInMemoryFollowStore(users)}

	rec := httptest.NewRecorder()
	handler.Follow(rec, followRequest(alice.ID, "ghost"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to / got %q", loc)
	}
}

func TestFollowHandlerUnfollow(t *testing.T) {
	users := newInMemoryUserStore()
	alice := users.add(t, "alice", "alice@example.com", "password123")
	bob := users.add(t, "bob", "bob@example.com", "password123")
	follows := newInMemoryFollowStore(users)
	handler := FollowHandler{Users: users, Follows: follows}

	if err := follows.Follow(context.Background(), alice.ID, bob.ID); err != nil {
		t.Fatalf("seed follow: %v", err)
	}

	// Unfollowing twice has the same effect as once.
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/unfollow/bob", nil)
		req.SetPathValue("username", "bob")
		req = req.WithContext(auth.WithUserID(req.Context(), alice.ID))
		rec := httptest.NewRecorder()

		handler.Unfollow(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect got %d", rec.Code)
		}
	}

	following, _, err := follows.Counts(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if following != 0 {
		t.Fatalf("expected zero edges after unfollow, got %d", following)
	}
}
