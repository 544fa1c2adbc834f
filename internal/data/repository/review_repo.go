package repository

import (
	"context"
	"fmt"
	"time"

	"movie-favorites/internal/data/entity"
	"movie-favorites/pkg/database"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	Save(ctx context.Context, review *entity.Review) (int64, error)
	FindByMovieRowID(ctx context.Context, movieRowID int64) ([]*entity.Review, error)
	DeleteByMovieRowID(ctx context.Context, movieRowID int64) (int64, error)
}

type reviewRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewReviewRepository(db database.DBTX, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// Save inserts a review. The review must already carry its parent movie row id.
func (r *reviewRepository) Save(ctx context.Context, review *entity.Review) (int64, error) {
	if review.MovieRowID <= 0 {
		return 0, fmt.Errorf("save review %s: missing movie row id", review.ReviewID)
	}

	query := `
		INSERT INTO reviews (review_id, movie_row_id, author, content, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING _id
	`

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	var rowID int64
	err := r.db.QueryRow(ctx, query,
		review.ReviewID,
		review.MovieRowID,
		review.Author,
		review.Content,
		review.URL,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&rowID)

	if err != nil {
		r.log.Error("Failed to save review",
			zap.Error(err),
			zap.String("review_id", review.ReviewID),
			zap.Int64("movie_row_id", review.MovieRowID),
		)
		return 0, fmt.Errorf("save review %s for movie row %d: %w", review.ReviewID, review.MovieRowID, err)
	}

	review.RowID = rowID
	return rowID, nil
}

func (r *reviewRepository) FindByMovieRowID(ctx context.Context, movieRowID int64) ([]*entity.Review, error) {
	query := `
		SELECT _id, review_id, movie_row_id, author, content, url, created_at, updated_at
		FROM reviews
		WHERE movie_row_id = $1
		ORDER BY _id
	`

	rows, err := r.db.Query(ctx, query, movieRowID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie row ID",
			zap.Error(err),
			zap.Int64("movie_row_id", movieRowID),
		)
		return nil, fmt.Errorf("find reviews for movie row %d: %w", movieRowID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.RowID,
			&review.ReviewID,
			&review.MovieRowID,
			&review.Author,
			&review.Content,
			&review.URL,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) DeleteByMovieRowID(ctx context.Context, movieRowID int64) (int64, error) {
	query := `DELETE FROM reviews WHERE movie_row_id = $1`

	result, err := r.db.Exec(ctx, query, movieRowID)
	if err != nil {
		r.log.Error("Failed to delete reviews",
			zap.Error(err),
			zap.Int64("movie_row_id", movieRowID),
		)
		return 0, fmt.Errorf("delete reviews for movie row %d: %w", movieRowID, err)
	}

	return result.RowsAffected(), nil
}
