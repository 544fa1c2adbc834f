package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/dto/response"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovie(ctx context.Context, movieID int64) (*response.MovieDetailResponse, error)
	GetReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error)
	GetTrailers(ctx context.Context, movieID int64) ([]response.TrailerResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	source catalog.Source
	images catalog.Images
	log    *zap.Logger
}

func NewCatalogService(
	repo *repository.Repository,
	source catalog.Source,
	images catalog.Images,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		repo:   repo,
		source: source,
		images: images,
		log:    log.With(zap.String("service", "catalog")),
	}
}

// ListMovies loads one popular or top-rated page and marks the entries that
// are stored as favorites.
func (s *catalogService) ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	var (
		result *catalog.MoviePage
		err    error
	)
	switch req.Sort {
	case request.SortTopRated:
		result, err = s.source.TopRated(ctx, page)
	default:
		result, err = s.source.Popular(ctx, page)
	}
	if err != nil {
		s.log.Error("Failed to load catalog page",
			zap.Error(err),
			zap.String("sort", req.Sort),
			zap.Int("page", page),
		)
		return nil, fmt.Errorf("list %s movies: %w", req.Sort, err)
	}

	movies := make([]response.MovieResponse, len(result.Movies))
	for i := range result.Movies {
		movie := &result.Movies[i]
		favorite, err := s.repo.Movie.Contains(ctx, movie.MovieID)
		if err != nil {
			// the listing is still usable without the flag
			s.log.Warn("Failed to check favorite status",
				zap.Error(err),
				zap.Int64("movie_id", movie.MovieID),
			)
		}
		movies[i] = response.MovieToResponse(movie, s.images, favorite)
	}

	return response.NewCatalogPage(movies, result.Page, result.TotalPages, int64(result.TotalResults)), nil
}

func (s *catalogService) GetMovie(ctx context.Context, movieID int64) (*response.MovieDetailResponse, error) {
	stored, err := loadStoredMovie(ctx, s.repo, s.images, movieID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored, nil
	}

	movie, err := s.source.Movie(ctx, movieID)
	if err != nil {
		return nil, s.catalogErr("movie", movieID, err)
	}

	detail := response.MovieToDetailResponse(movie, s.images, false, nil, nil, response.SourceCatalog)
	return &detail, nil
}

func (s *catalogService) GetReviews(ctx context.Context, movieID int64) ([]response.ReviewResponse, error) {
	stored, err := loadStoredMovie(ctx, s.repo, s.images, movieID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored.Reviews, nil
	}

	reviews, err := s.source.Reviews(ctx, movieID)
	if err != nil {
		return nil, s.catalogErr("reviews", movieID, err)
	}
	return reviewsToResponse(reviews), nil
}

func (s *catalogService) GetTrailers(ctx context.Context, movieID int64) ([]response.TrailerResponse, error) {
	stored, err := loadStoredMovie(ctx, s.repo, s.images, movieID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored.Trailers, nil
	}

	trailers, err := s.source.Trailers(ctx, movieID)
	if err != nil {
		return nil, s.catalogErr("trailers", movieID, err)
	}
	return trailersToResponse(trailers), nil
}

func (s *catalogService) catalogErr(what string, movieID int64, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("catalog %s %d: %w", what, movieID, ErrMovieNotFound)
	}
	s.log.Error("Catalog request failed",
		zap.Error(err),
		zap.String("resource", what),
		zap.Int64("movie_id", movieID),
		zap.Stringer("kind", catalog.KindOf(err)),
	)
	return fmt.Errorf("catalog %s %d: %w", what, movieID, err)
}
