package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviemates/backend/internal/config"
)

type fakePool struct{}

func (fakePool) Acquire(context.Context) (*pgxpool.Conn, error) {
	return nil, errors.New("not implemented")
}

func (fakePool) Close() {}

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{
		CatalogBaseURL: "https://catalog.example.com",
		CatalogAPIKey:  "test-key",
		CatalogTimeout: time.Second,
		SessionTTL:     time.Hour,
	}

	deps, sessions := buildDependencies(fakePool{}, cfg)

	if deps.Users == nil {
		t.Fatal("expected user repository to be configured")
	}
	if deps.Sessions == nil {
		t.Fatal("expected session manager to be configured")
	}
	if deps.Follows == nil {
		t.Fatal("expected follow repository to be configured")
	}
	if deps.Interactions == nil {
		t.Fatal("expected interaction repository to be configured")
	}
	if deps.Catalog == nil {
		t.Fatal("expected catalog client to be configured")
	}
	if deps.Views == nil {
		t.Fatal("expected view service to be configured")
	}
	if deps.AuthLimiter == nil || deps.ActionLimiter == nil {
		t.Fatal("expected rate limiters to be configured")
	}
	if sessions == nil {
		t.Fatal("expected the shared session manager to be returned")
	}
}
