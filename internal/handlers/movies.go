package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/moviemates/backend/internal/auth"
	"github.com/moviemates/backend/internal/catalog"
	"github.com/moviemates/backend/internal/logging"
	"github.com/moviemates/backend/internal/models"
	"github.com/moviemates/backend/internal/repositories"
	"github.com/moviemates/backend/internal/views"
)

// discoverLimit caps each of the trending and top-rated lists.
const discoverLimit = 10

// MovieHandler serves the movie pages and the interaction JSON endpoints.
type MovieHandler struct {
	Interactions InteractionStore
	Catalog      catalog.Client
	Views        ViewService
	Limiter      RateLimiter
}

// Status handles GET /api/movie/status?movie_id=. The response is the
// interaction flags encoded as a [liked, watched, watchlist] integer triple;
// a (user, movie) pair with no record reads as all zeroes.
func (h MovieHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "user not logged in"})
		return
	}

	movieID, err := strconv.ParseInt(r.URL.Query().Get("movie_id"), 10, 64)
	if err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	record, err := h.Interactions.Find(ctx, userID, movieID)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.Error("interaction lookup failed", "error", err, "movieId", movieID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load movie status"})
		return
	}

	// The body is the bare triple, not an object; clients index it directly.
	respondJSON(ctx, w, http.StatusOK, statusTriple(record))
}

// Action handles POST /movie/action: it flips exactly one of the three
// interaction flags for the calling user.
func (h MovieHandler) Action(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "user not logged in"})
		return
	}

	if !allowRequest(h.Limiter, r, "movie-action") {
		respondJSON(ctx, w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid action payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	if req.MovieID == 0 || req.Action == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}

	action, err := models.ParseAction(req.Action)
	if err != nil {
		logger.Warn("unknown movie action", "action", req.Action)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid action"})
		return
	}

	if _, err := h.Interactions.Toggle(ctx, userID, req.MovieID, action); err != nil {
		logger.Error("toggle failed", "error", err, "movieId", req.MovieID, "action", req.Action)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update movie status"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, actionResponse{Success: true})
}

// Watchlist handles GET /watchlist: every movie the user currently has
// watchlisted, resolved against the catalog. Entries the catalog cannot
// resolve are skipped, not failed.
func (h MovieHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	records, err := h.Interactions.ListWatchlist(ctx, userID)
	if err != nil {
		logger.Error("watchlist lookup failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load watchlist"})
		return
	}

	movies := make([]catalog.Movie, 0, len(records))
	for _, record := range records {
		details, err := h.Catalog.GetByID(ctx, record.MovieID)
		if err != nil {
			logger.Warn("skipping unresolvable watchlist entry", "movieId", record.MovieID, "error", err)
			continue
		}
		movies = append(movies, details.Movie)
	}

	respondJSON(ctx, w, http.StatusOK, movieListResponse{Movies: movies})
}

// Friends handles GET /friends: the top movies among everyone the user
// follows.
func (h MovieHandler) Friends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	userID, ok := auth.UserIDFrom(ctx)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	ranked, err := h.Views.TopAmongFollowees(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("top movies lookup failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load friend activity"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, friendsResponse{Movies: ranked})
}

// Discover handles GET /discover: trending and top-rated listings from the
// catalog, plus the caller's own interaction flags for the listed movies.
// Catalog failures degrade to empty lists with a warning, not an error page.
func (h MovieHandler) Discover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	resp := discoverResponse{
		Trending: []catalog.Movie{},
		TopRated: []catalog.Movie{},
	}

	trending, trendingErr := h.Catalog.Trending(ctx)
	topRated, topRatedErr := h.Catalog.TopRated(ctx)
	if trendingErr != nil || topRatedErr != nil {
		logger.Warn("catalog discover listings unavailable",
			"trendingError", trendingErr, "topRatedError", topRatedErr)
		resp.Warning = "movie listings are temporarily unavailable"
	}
	resp.Trending = clip(trending, discoverLimit)
	resp.TopRated = clip(topRated, discoverLimit)

	if userID, ok := auth.UserIDFrom(ctx); ok {
		records, err := h.Interactions.ListForUser(ctx, userID)
		if err != nil {
			logger.Warn("interaction listing failed", "error", err)
		} else {
			resp.UserInteractions = interactionMap(records)
		}
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

// Details handles GET /discover/{movie_name}: a search by title followed by
// a detail lookup on the best match. Any failure sends the caller home.
func (h MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)
	name := r.PathValue("movie_name")

	results, err := h.Catalog.Search(ctx, name)
	if err != nil || len(results) == 0 {
		logger.Warn("movie detail search failed", "movieName", name, "error", err)
		redirect(w, r, "/")
		return
	}

	details, err := h.Catalog.GetByID(ctx, results[0].ID)
	if err != nil {
		logger.Warn("movie detail lookup failed", "movieId", results[0].ID, "error", err)
		redirect(w, r, "/")
		return
	}

	respondJSON(ctx, w, http.StatusOK, detailsResponse{Movie: details})
}

// Search handles GET /search?query=. A missing query sends the caller home;
// a catalog failure degrades to an empty result with a warning.
func (h MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		redirect(w, r, "/")
		return
	}

	resp := searchResponse{Query: query, Movies: []catalog.Movie{}}

	results, err := h.Catalog.Search(ctx, query)
	if err != nil {
		logging.FromContext(ctx).Warn("catalog search failed", "query", query, "error", err)
		resp.Warning = "movie search is temporarily unavailable"
	} else {
		resp.Movies = results
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

// statusTriple encodes interaction flags in the order clients expect:
// liked, watched, watchlist.
func statusTriple(record models.Interaction) [3]int {
	var triple [3]int
	if record.Liked {
		triple[0] = 1
	}
	if record.Watched {
		triple[1] = 1
	}
	if record.Watchlist {
		triple[2] = 1
	}
	return triple
}

func interactionMap(records []models.Interaction) map[string][3]int {
	flags := make(map[string][3]int, len(records))
	for _, record := range records {
		flags[strconv.FormatInt(record.MovieID, 10)] = statusTriple(record)
	}
	return flags
}

func clip(movies []catalog.Movie, limit int) []catalog.Movie {
	if movies == nil {
		return []catalog.Movie{}
	}
	if len(movies) > limit {
		return movies[:limit]
	}
	return movies
}

type actionRequest struct {
	MovieID int64  `json:"movie_id"`
	Action  string `json:"action"`
}

type actionResponse struct {
	Success bool `json:"success"`
}

type movieListResponse struct {
	Movies []catalog.Movie `json:"movies"`
}

type friendsResponse struct {
	Movies []views.RankedMovie `json:"movies"`
}

type discoverResponse struct {
	Trending         []catalog.Movie   `json:"trending"`
	TopRated         []catalog.Movie   `json:"top_rated"`
	UserInteractions map[string][3]int `json:"user_interactions,omitempty"`
	Warning          string            `json:"warning,omitempty"`
}

type detailsResponse struct {
	Movie catalog.MovieDetails `json:"movie"`
}

type searchResponse struct {
	Query   string          `json:"query"`
	Movies  []catalog.Movie `json:"movies"`
	Warning string          `json:"warning,omitempty"`
}
