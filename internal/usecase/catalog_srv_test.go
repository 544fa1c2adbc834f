package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/dto/request"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogService_ListMovies_MarksFavorites(t *testing.T) {
	repo, mock := newMockRepo(t)
	source := &fakeSource{page: &catalog.MoviePage{
		Page:         1,
		TotalResults: 40,
		TotalPages:   2,
		Movies: []entity.Movie{
			{MovieID: 550, Title: "Fight Club", PosterPath: "p.jpg"},
			{MovieID: 680, Title: "Pulp Fiction"},
		},
	}}
	svc := NewCatalogService(repo, source, testImages, zap.NewNop())

	expectExists(mock, 550, true)
	expectExists(mock, 680, false)

	page, err := svc.ListMovies(context.Background(), &request.MovieListRequest{Sort: request.SortTopRated, Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.True(t, page.Data[0].Favorite)
	assert.False(t, page.Data[1].Favorite)
	assert.Equal(t, "https://image.example.org/t/p/w185/p.jpg", page.Data[0].PosterURL)
	assert.Empty(t, page.Data[1].PosterURL)
	assert.Equal(t, int64(40), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_GetMovie_FromCatalog(t *testing.T) {
	repo, mock := newMockRepo(t)
	source := &fakeSource{movies: map[int64]*entity.Movie{550: sampleMovie()}}
	svc := NewCatalogService(repo, source, testImages, zap.NewNop())

	mock.ExpectQuery(`FROM movies WHERE movie_id = \$1`).
		WithArgs(int64(550)).
		WillReturnError(pgx.ErrNoRows)

	detail, err := svc.GetMovie(context.Background(), 550)
	require.NoError(t, err)
	assert.Equal(t, "catalog", detail.Source)
	assert.False(t, detail.Favorite)
	assert.NotNil(t, detail.Reviews)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_GetMovie_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewCatalogService(repo, &fakeSource{}, testImages, zap.NewNop())

	mock.ExpectQuery(`FROM movies WHERE movie_id = \$1`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetMovie(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMovieNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
