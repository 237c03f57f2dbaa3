package auth

import (
	"context"
	"testing"
	"time"
)

func TestManagerIssueAndResolve(t *testing.T) {
	store := NewInMemorySessionStore()
	manager := NewManager(time.Hour, store)

	token, err := manager.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.Token == "" {
		t.Fatalf("expected non-empty token: %+v", token)
	}

	userID, err := manager.Resolve(context.Background(), token.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1 got %q", userID)
	}
}

func TestManagerIssueValidation(t *testing.T) {
	manager := NewManager(time.Hour, NewInMemorySessionStore())
	if _, err := manager.Issue(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestManagerResolveFailures(t *testing.T) {
	store := NewInMemorySessionStore()
	manager := NewManager(time.Millisecond, store)

	if _, err := manager.Resolve(context.Background(), ""); err != ErrSessionNotFound {
		t.Fatalf("expected session not found got %v", err)
	}

	token, err := manager.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(2 * time.Millisecond)

	if _, err := manager.Resolve(context.Background(), token.Token); err != ErrSessionExpired {
		t.Fatalf("expected session expired got %v", err)
	}
	if store.Has(token.Token) {
		t.Fatal("expired token should have been removed")
	}
}

func TestManagerRevoke(t *testing.T) {
	store := NewInMemorySessionStore()
	manager := NewManager(time.Hour, store)

	token, err := manager.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	manager.Revoke(context.Background(), token.Token)

	if _, err := manager.Resolve(context.Background(), token.Token); err != ErrSessionNotFound {
		t.Fatalf("expected session not found after revoke got %v", err)
	}
	if store.Has(token.Token) {
		t.Fatal("revoked token should have been removed")
	}
}
