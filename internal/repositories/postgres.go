package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/moviemates/backend/internal/db"
	"github.com/moviemates/backend/internal/models"
)

// PostgresUserRepository provides PostgreSQL-backed persistence for users.
type PostgresUserRepository struct {
	pool db.Pool
}

// NewPostgresUserRepository constructs a user repository backed by PostgreSQL.
func NewPostgresUserRepository(pool db.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// Create persists a new user record.
func (r *PostgresUserRepository) Create(ctx context.Context, user models.User) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByID fetches a user by their identifier.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail fetches a user by their email address. The match is exact and
// case-sensitive.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByUsername fetches a user by their username.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var user models.User
	row := conn.QueryRow(ctx, query, arg)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}

// List returns every registered user ordered by username.
func (r *PostgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
}

// SearchByUsername returns users whose username contains the query,
// case-insensitively.
func (r *PostgresUserRepository) SearchByUsername(ctx context.Context, query string) ([]models.User, error) {
	return r.queryUsers(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE username ILIKE '%' || $1 || '%'
        ORDER BY username
    `, query)
}

func (r *PostgresUserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]models.User, error) {
	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// PostgresFollowRepository provides PostgreSQL-backed persistence for the
// follow graph.
type PostgresFollowRepository struct {
	pool db.Pool
}

// NewPostgresFollowRepository constructs a follow repository backed by PostgreSQL.
func NewPostgresFollowRepository(pool db.Pool) *PostgresFollowRepository {
	return &PostgresFollowRepository{pool: pool}
}

// Follow inserts the edge follower -> followed if absent. Re-following is a
// no-op; following yourself or a nonexistent user is an error.
func (r *PostgresFollowRepository) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrInvalidEdge
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO follows (follower_id, followed_id)
        VALUES ($1, $2)
        ON CONFLICT (follower_id, followed_id) DO NOTHING
    `, followerID, followedID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return ErrNotFound
			case "23514":
				return ErrInvalidEdge
			}
		}
		return fmt.Errorf("insert follow edge: %w", err)
	}

	return nil
}

// Unfollow removes the edge follower -> followed. Removing an absent edge is
// a no-op.
func (r *PostgresFollowRepository) Unfollow(ctx context.Context, followerID, followedID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `
        DELETE FROM follows
        WHERE follower_id = $1 AND followed_id = $2
    `, followerID, followedID); err != nil {
		return fmt.Errorf("delete follow edge: %w", err)
	}

	return nil
}

// IsFollowing reports whether the edge follower -> followed exists.
func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	row := conn.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2
        )
    `, followerID, followedID)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check follow edge: %w", err)
	}

	return exists, nil
}

// ListFollowing returns the users the given user follows.
func (r *PostgresFollowRepository) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	return r.queryEdgeUsers(ctx, `
        SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at
        FROM follows f
        JOIN users u ON u.id = f.followed_id
        WHERE f.follower_id = $1
    `, userID)
}

// ListFollowers returns the users following the given user.
func (r *PostgresFollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.User, error) {
	return r.queryEdgeUsers(ctx, `
        SELECT u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at
        FROM follows f
        JOIN users u ON u.id = f.follower_id
        WHERE f.followed_id = $1
    `, userID)
}

func (r *PostgresFollowRepository) queryEdgeUsers(ctx context.Context, query, userID string) ([]models.User, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query follow edges: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// Counts returns how many users the given user follows and is followed by.
func (r *PostgresFollowRepository) Counts(ctx context.Context, userID string) (int, int, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var following, followers int
	row := conn.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM follows WHERE follower_id = $1),
            (SELECT COUNT(*) FROM follows WHERE followed_id = $1)
    `, userID)
	if err := row.Scan(&following, &followers); err != nil {
		return 0, 0, fmt.Errorf("count follow edges: %w", err)
	}

	return following, followers, nil
}

// PostgresInteractionRepository provides PostgreSQL-backed persistence for
// per-(user, movie) interaction records.
type PostgresInteractionRepository struct {
	pool db.Pool
}

// NewPostgresInteractionRepository constructs an interaction repository backed
// by PostgreSQL.
func NewPostgresInteractionRepository(pool db.Pool) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{pool: pool}
}

const interactionColumns = `id, user_id, movie_id, watched, liked, watchlist, created_at`

// Each toggle is a single upsert so concurrent flips on the same pair cannot
// lose updates. The statement is chosen by an exhaustive switch on the action;
// no caller-controlled string ever reaches the SQL.
const (
	toggleWatchedSQL = `
        INSERT INTO interactions (user_id, movie_id, watched)
        VALUES ($1, $2, TRUE)
        ON CONFLICT (user_id, movie_id)
        DO UPDATE SET watched = NOT interactions.watched
        RETURNING ` + interactionColumns

	toggleLikedSQL = `
        INSERT INTO interactions (user_id, movie_id, liked)
        VALUES ($1, $2, TRUE)
        ON CONFLICT (user_id, movie_id)
        DO UPDATE SET liked = NOT interactions.liked
        RETURNING ` + interactionColumns

	toggleWatchlistSQL = `
        INSERT INTO interactions (user_id, movie_id, watchlist)
        VALUES ($1, $2, TRUE)
        ON CONFLICT (user_id, movie_id)
        DO UPDATE SET watchlist = NOT interactions.watchlist
        RETURNING ` + interactionColumns
)

// Toggle flips one flag for the (user, movie) pair, creating the record on
// first use, and returns the updated record.
func (r *PostgresInteractionRepository) Toggle(ctx context.Context, userID string, movieID int64, action models.Action) (models.Interaction, error) {
	var query string
	switch action {
	case models.ActionWatch:
		query = toggleWatchedSQL
	case models.ActionLike:
		query = toggleLikedSQL
	case models.ActionWatchlist:
		query = toggleWatchlistSQL
	default:
		return models.Interaction{}, fmt.Errorf("toggle: unknown action %d", action)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Interaction{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var record models.Interaction
	row := conn.QueryRow(ctx, query, userID, movieID)
	if err := row.Scan(&record.ID, &record.UserID, &record.MovieID, &record.Watched, &record.Liked, &record.Watchlist, &record.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.Interaction{}, ErrNotFound
		}
		return models.Interaction{}, fmt.Errorf("toggle interaction: %w", err)
	}

	return record, nil
}

// Find fetches the interaction record for the pair, or ErrNotFound when the
// user has never toggled anything for the movie.
func (r *PostgresInteractionRepository) Find(ctx context.Context, userID string, movieID int64) (models.Interaction, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Interaction{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var record models.Interaction
	row := conn.QueryRow(ctx, `
        SELECT `+interactionColumns+`
        FROM interactions
        WHERE user_id = $1 AND movie_id = $2
    `, userID, movieID)
	if err := row.Scan(&record.ID, &record.UserID, &record.MovieID, &record.Watched, &record.Liked, &record.Watchlist, &record.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Interaction{}, ErrNotFound
		}
		return models.Interaction{}, fmt.Errorf("select interaction: %w", err)
	}

	return record, nil
}

// ListForUser returns every interaction record belonging to the user.
func (r *PostgresInteractionRepository) ListForUser(ctx context.Context, userID string) ([]models.Interaction, error) {
	return r.queryInteractions(ctx, `
        SELECT `+interactionColumns+`
        FROM interactions
        WHERE user_id = $1
    `, userID)
}

// ListWatchlist returns the user's interactions with the watchlist flag set.
func (r *PostgresInteractionRepository) ListWatchlist(ctx context.Context, userID string) ([]models.Interaction, error) {
	return r.queryInteractions(ctx, `
        SELECT `+interactionColumns+`
        FROM interactions
        WHERE user_id = $1 AND watchlist
        ORDER BY id DESC
    `, userID)
}

// ListRecent returns the newest interaction records by creation order.
func (r *PostgresInteractionRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Interaction, error) {
	return r.queryInteractions(ctx, `
        SELECT `+interactionColumns+`
        FROM interactions
        WHERE user_id = $1
        ORDER BY id DESC
        LIMIT $2
    `, userID, limit)
}

func (r *PostgresInteractionRepository) queryInteractions(ctx context.Context, query string, args ...any) ([]models.Interaction, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var records []models.Interaction
	for rows.Next() {
		var record models.Interaction
		if err := rows.Scan(&record.ID, &record.UserID, &record.MovieID, &record.Watched, &record.Liked, &record.Watchlist, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}

	return records, nil
}

// TallyFolloweeMovies counts interaction rows per movie across every followee
// of the user. Every row counts, whatever its flags; ties sort arbitrarily.
func (r *PostgresInteractionRepository) TallyFolloweeMovies(ctx context.Context, userID string, limit int) ([]MovieTally, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT i.movie_id, COUNT(*) AS tally
        FROM follows f
        JOIN interactions i ON i.user_id = f.followed_id
        WHERE f.follower_id = $1
        GROUP BY i.movie_id
        ORDER BY tally DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query followee tallies: %w", err)
	}
	defer rows.Close()

	var tallies []MovieTally
	for rows.Next() {
		var tally MovieTally
		if err := rows.Scan(&tally.MovieID, &tally.Count); err != nil {
			return nil, fmt.Errorf("scan followee tally: %w", err)
		}
		tallies = append(tallies, tally)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate followee tallies: %w", err)
	}

	return tallies, nil
}

// PostgresMovieRepository maintains the write-through movie mirror.
type PostgresMovieRepository struct {
	pool db.Pool
}

// NewPostgresMovieRepository constructs a movie repository backed by PostgreSQL.
func NewPostgresMovieRepository(pool db.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{pool: pool}
}

// Upsert refreshes the mirrored title and poster for a catalog entry.
func (r *PostgresMovieRepository) Upsert(ctx context.Context, movie models.Movie) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `
        INSERT INTO movies (id, title, poster_path)
        VALUES ($1, $2, $3)
        ON CONFLICT (id)
        DO UPDATE SET title = EXCLUDED.title, poster_path = EXCLUDED.poster_path
    `, movie.ID, movie.Title, movie.PosterPath); err != nil {
		return fmt.Errorf("upsert movie: %w", err)
	}

	return nil
}

// Find fetches a mirrored movie record.
func (r *PostgresMovieRepository) Find(ctx context.Context, id int64) (models.Movie, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Movie{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var movie models.Movie
	row := conn.QueryRow(ctx, `SELECT id, title, poster_path FROM movies WHERE id = $1`, id)
	if err := row.Scan(&movie.ID, &movie.Title, &movie.PosterPath); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Movie{}, ErrNotFound
		}
		return models.Movie{}, fmt.Errorf("select movie: %w", err)
	}

	return movie, nil
}

var _ UserRepository = (*PostgresUserRepository)(nil)
var _ FollowRepository = (*PostgresFollowRepository)(nil)
var _ InteractionRepository = (*PostgresInteractionRepository)(nil)
var _ MovieRepository = (*PostgresMovieRepository)(nil)
