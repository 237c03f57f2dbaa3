package app

import (
	"time"

	"github.com/moviemates/backend/internal/auth"
	"github.com/moviemates/backend/internal/catalog"
	"github.com/moviemates/backend/internal/config"
	"github.com/moviemates/backend/internal/db"
	"github.com/moviemates/backend/internal/handlers"
	"github.com/moviemates/backend/internal/middleware"
	"github.com/moviemates/backend/internal/repositories"
	"github.com/moviemates/backend/internal/views"
)

// buildDependencies wires together the concrete implementations used by the
// HTTP handlers and returns the session manager separately so the session
// middleware can share it.
func buildDependencies(pool db.Pool, cfg config.Config) (handlers.Dependencies, *auth.Manager) {
	users := repositories.NewPostgresUserRepository(pool)
	follows := repositories.NewPostgresFollowRepository(pool)
	interactions := repositories.NewPostgresInteractionRepository(pool)
	movies := repositories.NewPostgresMovieRepository(pool)

	sessions := auth.NewManager(cfg.SessionTTL, repositories.NewPostgresSessionStore(pool))
	catalogClient := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey, cfg.CatalogTimeout)

	deps := handlers.Dependencies{
		Users:         users,
		Sessions:      sessions,
		Follows:       follows,
		Interactions:  interactions,
		Catalog:       catalogClient,
		Views:         views.NewService(interactions, catalogClient, movies),
		AuthLimiter:   middleware.NewIPRateLimiter(10, time.Minute, 5, 10*time.Minute),
		ActionLimiter: middleware.NewIPRateLimiter(60, time.Minute, 20, 10*time.Minute),
	}

	return deps, sessions
}
