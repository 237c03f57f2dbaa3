package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/moviemates/backend/internal/models"
)

var (
	// ErrSessionNotFound indicates the provided token does not map to an active session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates the session token has expired and cannot be used.
	ErrSessionExpired = errors.New("session expired")
)

// SessionStore persists issued session tokens so they survive process restarts.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// Session maps an opaque token to a logged-in user.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Manager manages the lifecycle of issued session tokens backed by a persistent store.
type Manager struct {
	ttl   time.Duration
	store SessionStore
}

// NewManager constructs a Manager that issues session tokens with the provided TTL.
func NewManager(ttl time.Duration, store SessionStore) *Manager {
	if store == nil {
		panic("auth: session store must not be nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{ttl: ttl, store: store}
}

// Issue creates a new session token for the provided user identifier.
func (m *Manager) Issue(ctx context.Context, userID string) (models.SessionToken, error) {
	if userID == "" {
		return models.SessionToken{}, errors.New("user id must be provided")
	}

	token, err := randomToken()
	if err != nil {
		return models.SessionToken{}, err
	}

	issued := models.SessionToken{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(m.ttl),
	}

	if err := m.store.Save(ctx, Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: issued.ExpiresAt,
	}); err != nil {
		return models.SessionToken{}, err
	}

	return issued, nil
}

// Resolve maps a session token to the user it was issued for. Expired
// sessions are deleted as a side effect and reported as expired.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrSessionNotFound
	}

	session, err := m.store.Find(ctx, token)
	if err != nil {
		return "", err
	}

	if time.Now().UTC().After(session.ExpiresAt) {
		_ = m.store.Delete(ctx, token)
		return "", ErrSessionExpired
	}

	return session.UserID, nil
}

// Revoke removes the provided token from the active session store.
func (m *Manager) Revoke(ctx context.Context, token string) {
	if token == "" {
		return
	}
	_ = m.store.Delete(ctx, token)
}

func randomToken() (string, error) {
	const size = 32
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
