package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateMovie is returned by Save when the catalog id is already stored.
var ErrDuplicateMovie = errors.New("movie already stored")

const uniqueViolation = "23505"

const movieColumns = `_id, movie_id, title, original_title, original_language, overview,
		       poster_path, backdrop_path, release_date, popularity, vote_count,
		       vote_average, adult, video, genre_ids, is_favorite, created_at, updated_at`

type MovieRepository interface {
	Save(ctx context.Context, movie *entity.Movie) (int64, error)
	Contains(ctx context.Context, movieID int64) (bool, error)
	FindByMovieID(ctx context.Context, movieID int64) (*entity.Movie, error)
	FindByRowID(ctx context.Context, rowID int64) (*entity.Movie, error)
	FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error)
	FindAllFavorites(ctx context.Context) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, rowID int64) (int64, error)
}

type movieRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewMovieRepository(db database.DBTX, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// Save inserts the movie as a favorite and back-fills its row id.
func (r *movieRepository) Save(ctx context.Context, movie *entity.Movie) (int64, error) {
	query := `
		INSERT INTO movies (movie_id, title, original_title, original_language, overview,
		                    poster_path, backdrop_path, release_date, popularity, vote_count,
		                    vote_average, adult, video, genre_ids, is_favorite,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING _id
	`

	now := time.Now()
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = now
	}
	movie.UpdatedAt = now
	movie.IsFavorite = true
	if movie.GenreIDs == nil {
		movie.GenreIDs = []int32{}
	}

	var rowID int64
	err := r.db.QueryRow(ctx, query,
		movie.MovieID,
		movie.Title,
		movie.OriginalTitle,
		movie.OriginalLanguage,
		movie.Overview,
		movie.PosterPath,
		movie.BackdropPath,
		movie.ReleaseDate,
		movie.Popularity,
		movie.VoteCount,
		movie.VoteAverage,
		movie.Adult,
		movie.Video,
		movie.GenreIDs,
		movie.IsFavorite,
		movie.CreatedAt,
		movie.UpdatedAt,
	).Scan(&rowID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("save movie %d: %w", movie.MovieID, ErrDuplicateMovie)
		}
		r.log.Error("Failed to save movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.MovieID),
			zap.String("title", movie.Title),
		)
		return 0, fmt.Errorf("save movie %d: %w", movie.MovieID, err)
	}

	movie.RowID = rowID
	return rowID, nil
}

func (r *movieRepository) Contains(ctx context.Context, movieID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM movies WHERE movie_id = $1 AND is_favorite)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&exists); err != nil {
		r.log.Error("Failed to check movie existence",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return false, fmt.Errorf("check movie %d: %w", movieID, err)
	}

	return exists, nil
}

func (r *movieRepository) FindByMovieID(ctx context.Context, movieID int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE movie_id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, movieID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find movie %d: %w", movieID, err)
	}

	return movie, nil
}

func (r *movieRepository) FindByRowID(ctx context.Context, rowID int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE _id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, rowID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by row ID",
			zap.Error(err),
			zap.Int64("row_id", rowID),
		)
		return nil, fmt.Errorf("find movie row %d: %w", rowID, err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies
		WHERE is_favorite
		ORDER BY created_at DESC, _id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}

	movies, err := r.collect(rows)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)
	return movies, nil
}

func (r *movieRepository) FindAllFavorites(ctx context.Context) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE is_favorite ORDER BY _id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find favorite movies", zap.Error(err))
		return nil, fmt.Errorf("find favorite movies: %w", err)
	}

	return r.collect(rows)
}

func (r *movieRepository) collect(rows pgx.Rows) ([]*entity.Movie, error) {
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE is_favorite`

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

// Update rewrites the catalog fields of a stored movie, located by row id.
func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, original_title = $3, original_language = $4, overview = $5,
		    poster_path = $6, backdrop_path = $7, release_date = $8, popularity = $9,
		    vote_count = $10, vote_average = $11, adult = $12, video = $13,
		    genre_ids = $14, updated_at = $15
		WHERE _id = $1
	`

	movie.UpdatedAt = time.Now()
	if movie.GenreIDs == nil {
		movie.GenreIDs = []int32{}
	}

	result, err := r.db.Exec(ctx, query,
		movie.RowID,
		movie.Title,
		movie.OriginalTitle,
		movie.OriginalLanguage,
		movie.Overview,
		movie.PosterPath,
		movie.BackdropPath,
		movie.ReleaseDate,
		movie.Popularity,
		movie.VoteCount,
		movie.VoteAverage,
		movie.Adult,
		movie.Video,
		movie.GenreIDs,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("row_id", movie.RowID),
		)
		return fmt.Errorf("update movie row %d: %w", movie.RowID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie row %d not found", movie.RowID)
	}

	return nil
}

// Delete removes the movie row and returns the number of rows affected.
func (r *movieRepository) Delete(ctx context.Context, rowID int64) (int64, error) {
	query := `DELETE FROM movies WHERE _id = $1`

	result, err := r.db.Exec(ctx, query, rowID)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("row_id", rowID),
		)
		return 0, fmt.Errorf("delete movie row %d: %w", rowID, err)
	}

	r.log.Info("Movie deleted", zap.Int64("row_id", rowID), zap.Int64("affected", result.RowsAffected()))
	return result.RowsAffected(), nil
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.RowID,
		&movie.MovieID,
		&movie.Title,
		&movie.OriginalTitle,
		&movie.OriginalLanguage,
		&movie.Overview,
		&movie.PosterPath,
		&movie.BackdropPath,
		&movie.ReleaseDate,
		&movie.Popularity,
		&movie.VoteCount,
		&movie.VoteAverage,
		&movie.Adult,
		&movie.Video,
		&movie.GenreIDs,
		&movie.IsFavorite,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
