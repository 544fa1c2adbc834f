package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/dto/response"
	"movie-favorites/pkg/metrics"

	"go.uber.org/zap"
)

type FavoriteService interface {
	IsFavorite(ctx context.Context, movieID int64) (bool, error)
	AddFavorite(ctx context.Context, movie *entity.Movie, reviews []entity.Review, trailers []entity.Trailer) (bool, error)
	RemoveFavorite(ctx context.Context, movieID int64) (bool, error)
	GetFavorite(ctx context.Context, movieID int64) (*response.FavoriteStatusResponse, error)
	ListFavorites(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	FavoriteFromCatalog(ctx context.Context, movieID int64) (*response.MovieDetailResponse, bool, error)

	// Refresh update path
	AllFavorites(ctx context.Context) ([]*entity.Movie, error)
	UpdateFavorite(ctx context.Context, movie *entity.Movie) error
}

type favoriteService struct {
	repo   *repository.Repository
	source catalog.Source
	images catalog.Images
	log    *zap.Logger
}

func NewFavoriteService(
	repo *repository.Repository,
	source catalog.Source,
	images catalog.Images,
	log *zap.Logger,
) FavoriteService {
	return &favoriteService{
		repo:   repo,
		source: source,
		images: images,
		log:    log.With(zap.String("service", "favorite")),
	}
}

func (s *favoriteService) IsFavorite(ctx context.Context, movieID int64) (bool, error) {
	exists, err := s.repo.Movie.Contains(ctx, movieID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}

// AddFavorite stores the movie with its reviews and trailers in one
// transaction. It is a no-op when the movie is already a favorite. Each
// review and trailer gets the new movie row id back-filled.
func (s *favoriteService) AddFavorite(ctx context.Context, movie *entity.Movie, reviews []entity.Review, trailers []entity.Trailer) (bool, error) {
	if movie == nil || movie.MovieID <= 0 {
		return false, fmt.Errorf("invalid movie: missing catalog id")
	}

	added := false
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		exists, err := tx.Movie.Contains(ctx, movie.MovieID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		rowID, err := tx.Movie.Save(ctx, movie)
		if err != nil {
			return err
		}

		for i := range reviews {
			reviews[i].MovieRowID = rowID
			if _, err := tx.Review.Save(ctx, &reviews[i]); err != nil {
				return err
			}
		}

		for i := range trailers {
			trailers[i].MovieRowID = rowID
			if _, err := tx.Trailer.Save(ctx, &trailers[i]); err != nil {
				return err
			}
		}

		added = true
		return nil
	})

	if errors.Is(err, repository.ErrDuplicateMovie) {
		// lost a race against a concurrent add of the same movie
		clearRowIDs(movie, reviews, trailers)
		metrics.FavoriteMutations.WithLabelValues("add", "noop").Inc()
		return false, nil
	}
	if err != nil {
		clearRowIDs(movie, reviews, trailers)
		metrics.FavoriteMutations.WithLabelValues("add", "error").Inc()
		s.log.Error("Failed to add favorite",
			zap.Error(err),
			zap.Int64("movie_id", movie.MovieID),
		)
		return false, fmt.Errorf("add favorite %d: %w", movie.MovieID, err)
	}

	if !added {
		metrics.FavoriteMutations.WithLabelValues("add", "noop").Inc()
		s.log.Debug("Movie already favorite", zap.Int64("movie_id", movie.MovieID))
		return false, nil
	}

	metrics.FavoriteMutations.WithLabelValues("add", "applied").Inc()
	s.log.Info("Favorite added",
		zap.Int64("movie_id", movie.MovieID),
		zap.Int64("row_id", movie.RowID),
		zap.String("title", movie.Title),
		zap.Int("reviews", len(reviews)),
		zap.Int("trailers", len(trailers)),
	)
	return true, nil
}

// clearRowIDs drops the ids assigned inside a rolled-back transaction.
func clearRowIDs(movie *entity.Movie, reviews []entity.Review, trailers []entity.Trailer) {
	movie.RowID = 0
	for i := range reviews {
		reviews[i].RowID = 0
		reviews[i].MovieRowID = 0
	}
	for i := range trailers {
		trailers[i].RowID = 0
		trailers[i].MovieRowID = 0
	}
}

// RemoveFavorite deletes the movie's reviews and trailers, then the movie,
// in one transaction. It is a no-op when the movie is not a favorite.
func (s *favoriteService) RemoveFavorite(ctx context.Context, movieID int64) (bool, error) {
	removed := false
	var reviewCount, trailerCount int64

	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		movie, err := tx.Movie.FindByMovieID(ctx, movieID)
		if err != nil {
			return err
		}
		if movie == nil {
			return nil
		}

		if reviewCount, err = tx.Review.DeleteByMovieRowID(ctx, movie.RowID); err != nil {
			return err
		}
		if trailerCount, err = tx.Trailer.DeleteByMovieRowID(ctx, movie.RowID); err != nil {
			return err
		}

		affected, err := tx.Movie.Delete(ctx, movie.RowID)
		if err != nil {
			return err
		}
		removed = affected > 0
		return nil
	})
	if err != nil {
		metrics.FavoriteMutations.WithLabelValues("remove", "error").Inc()
		s.log.Error("Failed to remove favorite",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return false, fmt.Errorf("remove favorite %d: %w", movieID, err)
	}

	if !removed {
		metrics.FavoriteMutations.WithLabelValues("remove", "noop").Inc()
		return false, nil
	}

	metrics.FavoriteMutations.WithLabelValues("remove", "applied").Inc()
	s.log.Info("Favorite removed",
		zap.Int64("movie_id", movieID),
		zap.Int64("reviews", reviewCount),
		zap.Int64("trailers", trailerCount),
	)
	return true, nil
}

func (s *favoriteService) GetFavorite(ctx context.Context, movieID int64) (*response.FavoriteStatusResponse, error) {
	detail, err := loadStoredMovie(ctx, s.repo, s.images, movieID)
	if err != nil {
		return nil, err
	}

	return &response.FavoriteStatusResponse{
		MovieID:  movieID,
		Favorite: detail != nil,
		Movie:    detail,
	}, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.repo.Movie.FindAll(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	data := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		data[i] = response.MovieToResponse(movie, s.images, true)
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

// FavoriteFromCatalog fetches a movie with its reviews and trailers from the
// catalog and stores it as a favorite. The returned flag reports whether the
// movie was newly added.
func (s *favoriteService) FavoriteFromCatalog(ctx context.Context, movieID int64) (*response.MovieDetailResponse, bool, error) {
	existing, err := loadStoredMovie(ctx, s.repo, s.images, movieID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	movie, err := s.source.Movie(ctx, movieID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, false, fmt.Errorf("catalog movie %d: %w", movieID, ErrMovieNotFound)
		}
		return nil, false, fmt.Errorf("fetch movie %d: %w", movieID, err)
	}

	// A favorite without reviews or trailers is still useful offline.
	reviews, err := s.source.Reviews(ctx, movieID)
	if err != nil {
		s.log.Warn("Failed to fetch reviews, saving favorite without them",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		reviews = nil
	}
	trailers, err := s.source.Trailers(ctx, movieID)
	if err != nil {
		s.log.Warn("Failed to fetch trailers, saving favorite without them",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		trailers = nil
	}

	added, err := s.AddFavorite(ctx, movie, reviews, trailers)
	if err != nil {
		return nil, false, err
	}

	detail := response.MovieToDetailResponse(movie, s.images, true,
		reviewsToResponse(reviews), trailersToResponse(trailers), response.SourceCatalog)
	return &detail, added, nil
}

func (s *favoriteService) AllFavorites(ctx context.Context) ([]*entity.Movie, error) {
	movies, err := s.repo.Movie.FindAllFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	return movies, nil
}

func (s *favoriteService) UpdateFavorite(ctx context.Context, movie *entity.Movie) error {
	if !movie.Persisted() {
		return fmt.Errorf("update favorite %d: movie is not stored", movie.MovieID)
	}
	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return fmt.Errorf("update favorite %d: %w", movie.MovieID, err)
	}
	return nil
}

// loadStoredMovie returns nil when the movie is not a favorite.
func loadStoredMovie(ctx context.Context, repo *repository.Repository, images catalog.Images, movieID int64) (*response.MovieDetailResponse, error) {
	movie, err := repo.Movie.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	if movie == nil || !movie.IsFavorite {
		return nil, nil
	}

	reviews, err := repo.Review.FindByMovieRowID(ctx, movie.RowID)
	if err != nil {
		return nil, fmt.Errorf("find favorite reviews: %w", err)
	}
	trailers, err := repo.Trailer.FindByMovieRowID(ctx, movie.RowID)
	if err != nil {
		return nil, fmt.Errorf("find favorite trailers: %w", err)
	}

	reviewResp := make([]response.ReviewResponse, len(reviews))
	for i, r := range reviews {
		reviewResp[i] = response.ReviewToResponse(r)
	}
	trailerResp := make([]response.TrailerResponse, len(trailers))
	for i, t := range trailers {
		trailerResp[i] = response.TrailerToResponse(t)
	}

	detail := response.MovieToDetailResponse(movie, images, true, reviewResp, trailerResp, response.SourceStore)
	return &detail, nil
}

func reviewsToResponse(reviews []entity.Review) []response.ReviewResponse {
	out := make([]response.ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = response.ReviewToResponse(&reviews[i])
	}
	return out
}

func trailersToResponse(trailers []entity.Trailer) []response.TrailerResponse {
	out := make([]response.TrailerResponse, len(trailers))
	for i := range trailers {
		out[i] = response.TrailerToResponse(&trailers[i])
	}
	return out
}
