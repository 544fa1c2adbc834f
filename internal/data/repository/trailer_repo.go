package repository

import (
	"context"
	"fmt"
	"time"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/database"

	"go.uber.org/zap"
)

type TrailerRepository interface {
	Save(ctx context.Context, trailer *entity.Trailer) (int64, error)
	FindByMovieRowID(ctx context.Context, movieRowID int64) ([]*entity.Trailer, error)
	DeleteByMovieRowID(ctx context.Context, movieRowID int64) (int64, error)
}

type trailerRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewTrailerRepository(db database.DBTX, log *zap.Logger) TrailerRepository {
	return &trailerRepository{
		db:  db,
		log: log.With(zap.String("repository", "trailer")),
	}
}

func (r *trailerRepository) Save(ctx context.Context, trailer *entity.Trailer) (int64, error) {
	if trailer.MovieRowID <= 0 {
		return 0, fmt.Errorf("save trailer %s: missing movie row id", trailer.TrailerID)
	}

	query := `
		INSERT INTO trailers (trailer_id, movie_row_id, iso_639_1, iso_3166_1, site, key,
		                      name, size, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING _id
	`

	now := time.Now()
	trailer.CreatedAt = now
	trailer.UpdatedAt = now

	var rowID int64
	err := r.db.QueryRow(ctx, query,
		trailer.TrailerID,
		trailer.MovieRowID,
		trailer.Language,
		trailer.Region,
		trailer.Site,
		trailer.Key,
		trailer.Name,
		trailer.Size,
		trailer.Type,
		trailer.CreatedAt,
		trailer.UpdatedAt,
	).Scan(&rowID)

	if err != nil {
		r.log.Error("Failed to save trailer",
			zap.Error(err),
			zap.String("trailer_id", trailer.TrailerID),
			zap.Int64("movie_row_id", trailer.MovieRowID),
		)
		return 0, fmt.Errorf("save trailer %s for movie row %d: %w", trailer.TrailerID, trailer.MovieRowID, err)
	}

	trailer.RowID = rowID
	return rowID, nil
}

func (r *trailerRepository) FindByMovieRowID(ctx context.Context, movieRowID int64) ([]*entity.Trailer, error) {
	query := `
		SELECT _id, trailer_id, movie_row_id, iso_639_1, iso_3166_1, site, key,
		       name, size, type, created_at, updated_at
		FROM trailers
		WHERE movie_row_id = $1
		ORDER BY _id
	`

	rows, err := r.db.Query(ctx, query, movieRowID)
	if err != nil {
		r.log.Error("Failed to find trailers by movie row ID",
			zap.Error(err),
			zap.Int64("movie_row_id", movieRowID),
		)
		return nil, fmt.Errorf("find trailers for movie row %d: %w", movieRowID, err)
	}
	defer rows.Close()

	var trailers []*entity.Trailer
	for rows.Next() {
		var trailer entity.Trailer
		err := rows.Scan(
			&trailer.RowID,
			&trailer.TrailerID,
			&trailer.MovieRowID,
			&trailer.Language,
			&trailer.Region,
			&trailer.Site,
			&trailer.Key,
			&trailer.Name,
			&trailer.Size,
			&trailer.Type,
			&trailer.CreatedAt,
			&trailer.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan trailer row", zap.Error(err))
			return nil, fmt.Errorf("scan trailer row: %w", err)
		}
		trailers = append(trailers, &trailer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trailer rows: %w", err)
	}

	return trailers, nil
}

func (r *trailerRepository) DeleteByMovieRowID(ctx context.Context, movieRowID int64) (int64, error) {
	query := `DELETE FROM trailers WHERE movie_row_id = $1`

	result, err := r.db.Exec(ctx, query, movieRowID)
	if err != nil {
		r.log.Error("Failed to delete trailers",
			zap.Error(err),
			zap.Int64("movie_row_id", movieRowID),
		)
		return 0, fmt.Errorf("delete trailers for movie row %d: %w", movieRowID, err)
	}

	return result.RowsAffected(), nil
}
