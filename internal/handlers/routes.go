package handlers

import (
	"net/http"

	"github.com/moviemates/backend/internal/catalog"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux. The route
// paths mirror the original MovieMates web application.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.AuthLimiter}
	users := UserHandler{Users: deps.Users, Follows: deps.Follows, Views: deps.Views}
	follows := FollowHandler{Users: deps.Users, Follows: deps.Follows}
	movies := MovieHandler{Interactions: deps.Interactions, Catalog: deps.Catalog, Views: deps.Views, Limiter: deps.ActionLimiter}

	mux.HandleFunc("/", users.Home)
	mux.HandleFunc("/healthz", health.Handle)

	mux.HandleFunc("/register", auth.Register)
	mux.HandleFunc("/login", auth.Login)
	mux.HandleFunc("/logout", auth.Logout)

	mux.HandleFunc("/list_users", users.List)
	mux.HandleFunc("/profile/{username}", users.Profile)
	mux.HandleFunc("/user/{id}/following", users.Following)
	mux.HandleFunc("/user/{id}/followers", users.Followers)
	mux.HandleFunc("/search_friends", users.Search)

	mux.HandleFunc("/follow/{username}", follows.Follow)
	mux.HandleFunc("/unfollow/{username}", follows.Unfollow)

	mux.HandleFunc("/watchlist", movies.Watchlist)
	mux.HandleFunc("/friends", movies.Friends)
	mux.HandleFunc("/discover", movies.Discover)
	mux.HandleFunc("/discover/{movie_name}", movies.Details)
	mux.HandleFunc("/search", movies.Search)
	mux.HandleFunc("/api/movie/status", movies.Status)
	mux.HandleFunc("/movie/action", movies.Action)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users         UserStore
	Sessions      SessionManager
	Follows       FollowStore
	Interactions  InteractionStore
	Catalog       catalog.Client
	Views         ViewService
	AuthLimiter   RateLimiter
	ActionLimiter RateLimiter
}
