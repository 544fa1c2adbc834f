package usecase

import (
	"context"
	"sync"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
)

// fakeSource serves movies from a map; unknown ids are catalog not-found
// errors.
type fakeSource struct {
	mu       sync.Mutex
	movies   map[int64]*entity.Movie
	errs     map[int64]error
	reviews  []entity.Review
	trailers []entity.Trailer
	page     *catalog.MoviePage
	block    chan struct{}
	started  chan struct{}
	calls    int
}

func (f *fakeSource) Popular(ctx context.Context, page int) (*catalog.MoviePage, error) {
	return f.page, nil
}

func (f *fakeSource) TopRated(ctx context.Context, page int) (*catalog.MoviePage, error) {
	return f.page, nil
}

func (f *fakeSource) Movie(ctx context.Context, movieID int64) (*entity.Movie, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := f.errs[movieID]; ok {
		return nil, err
	}
	m, ok := f.movies[movieID]
	if !ok {
		return nil, &catalog.Error{Kind: catalog.KindNotFound, StatusCode: 404}
	}
	movie := *m
	return &movie, nil
}

func (f *fakeSource) Reviews(ctx context.Context, movieID int64) ([]entity.Review, error) {
	return append([]entity.Review(nil), f.reviews...), nil
}

func (f *fakeSource) Trailers(ctx context.Context, movieID int64) ([]entity.Trailer, error) {
	return append([]entity.Trailer(nil), f.trailers...), nil
}

// fakeFavorites is an in-memory FavoriteStore.
type fakeFavorites struct {
	mu      sync.Mutex
	movies  []*entity.Movie
	updated []int64
}

func (f *fakeFavorites) AllFavorites(ctx context.Context) ([]*entity.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Movie, len(f.movies))
	for i, m := range f.movies {
		movie := *m
		out[i] = &movie
	}
	return out, nil
}

func (f *fakeFavorites) UpdateFavorite(ctx context.Context, movie *entity.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, movie.MovieID)
	for i, m := range f.movies {
		if m.MovieID == movie.MovieID {
			updated := *movie
			f.movies[i] = &updated
		}
	}
	return nil
}
