package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/dto/request"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var movieColumnNames = []string{
	"_id", "movie_id", "title", "original_title", "original_language", "overview",
	"poster_path", "backdrop_path", "release_date", "popularity", "vote_count",
	"vote_average", "adult", "video", "genre_ids", "is_favorite", "created_at", "updated_at",
}

var testImages = catalog.Images{BaseURL: "https://image.example.org/t/p"}

func newMockRepo(t *testing.T) (*repository.Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return repository.NewRepository(mock, zap.NewNop()), mock
}

func storedMovieRows(m *entity.Movie) *pgxmock.Rows {
	return pgxmock.NewRows(movieColumnNames).AddRow(
		m.RowID, m.MovieID, m.Title, m.OriginalTitle, m.OriginalLanguage, m.Overview,
		m.PosterPath, m.BackdropPath, m.ReleaseDate, m.Popularity, m.VoteCount,
		m.VoteAverage, m.Adult, m.Video, m.GenreIDs, m.IsFavorite, m.CreatedAt, m.UpdatedAt,
	)
}

func sampleMovie() *entity.Movie {
	return &entity.Movie{
		MovieID:     550,
		Title:       "Fight Club",
		Overview:    "An insomniac office worker...",
		PosterPath:  "poster.jpg",
		ReleaseDate: "1999-10-15",
		VoteCount:   26280,
		VoteAverage: 8.4,
		GenreIDs:    []int32{18},
	}
}

func sampleReviews() []entity.Review {
	return []entity.Review{{ReviewID: "r1", Author: "Goddard", Content: "Pretty awesome."}}
}

func sampleTrailers() []entity.Trailer {
	return []entity.Trailer{{TrailerID: "t1", Key: "SUXWAEX2jlg", Site: "YouTube", Type: "Trailer"}}
}

func expectExists(mock pgxmock.PgxPoolIface, movieID int64, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(movieID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestFavoriteService_AddFavorite(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	mock.ExpectBegin()
	expectExists(mock, 550, false)
	mock.ExpectQuery(`INSERT INTO movies`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(7)))
	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO trailers`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	movie := sampleMovie()
	reviews := sampleReviews()
	trailers := sampleTrailers()

	added, err := svc.AddFavorite(context.Background(), movie, reviews, trailers)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, int64(7), movie.RowID)
	assert.Equal(t, int64(7), reviews[0].MovieRowID)
	assert.Equal(t, int64(7), trailers[0].MovieRowID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_AddFavorite_AlreadyFavorite(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	mock.ExpectBegin()
	expectExists(mock, 550, true)
	mock.ExpectCommit()

	added, err := svc.AddFavorite(context.Background(), sampleMovie(), sampleReviews(), sampleTrailers())
	require.NoError(t, err)
	assert.False(t, added)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_AddFavorite_RollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	mock.ExpectBegin()
	expectExists(mock, 550, false)
	mock.ExpectQuery(`INSERT INTO movies`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(7)))
	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(3)))
	mock.ExpectQuery(`INSERT INTO trailers`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	movie := sampleMovie()
	reviews := sampleReviews()
	trailers := sampleTrailers()
	added, err := svc.AddFavorite(context.Background(), movie, reviews, trailers)
	require.Error(t, err)
	assert.False(t, added)
	assert.False(t, movie.Persisted())
	assert.False(t, reviews[0].Persisted())
	assert.Zero(t, reviews[0].MovieRowID)
	assert.Zero(t, trailers[0].MovieRowID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_AddFavorite_ConcurrentDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	// another request stored the movie between the check and the insert
	mock.ExpectBegin()
	expectExists(mock, 550, false)
	mock.ExpectQuery(`INSERT INTO movies`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	movie := sampleMovie()
	reviews := sampleReviews()
	added, err := svc.AddFavorite(context.Background(), movie, reviews, sampleTrailers())
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, movie.Persisted())
	assert.Zero(t, reviews[0].MovieRowID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_AddFavorite_InvalidMovie(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	_, err := svc.AddFavorite(context.Background(), &entity.Movie{}, nil, nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_RemoveFavorite(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	stored := sampleMovie()
	stored.RowID, stored.IsFavorite = 7, true

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM movies WHERE movie_id = \$1`).
		WithArgs(int64(550)).
		WillReturnRows(storedMovieRows(stored))
	mock.ExpectExec(`DELETE FROM reviews`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM trailers`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM movies`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	removed, err := svc.RemoveFavorite(context.Background(), 550)
	require.NoError(t, err)
	assert.True(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_RemoveFavorite_Absent(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM movies WHERE movie_id = \$1`).
		WithArgs(int64(550)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectCommit()

	removed, err := svc.RemoveFavorite(context.Background(), 550)
	require.NoError(t, err)
	assert.False(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_ListFavorites(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	stored := sampleMovie()
	stored.RowID, stored.IsFavorite, stored.CreatedAt = 7, true, time.Now()

	mock.ExpectQuery(`FROM movies\s+WHERE is_favorite`).
		WithArgs(2, 2).
		WillReturnRows(storedMovieRows(stored))
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	page, err := svc.ListFavorites(context.Background(), &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.True(t, page.Data[0].Favorite)
	assert.Equal(t, "https://image.example.org/t/p/w185/poster.jpg", page.Data[0].PosterURL)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_GetFavorite_NotStored(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, nil, testImages, zap.NewNop())

	mock.ExpectQuery(`FROM movies WHERE movie_id = \$1`).
		WithArgs(int64(680)).
		WillReturnError(pgx.ErrNoRows)

	status, err := svc.GetFavorite(context.Background(), 680)
	require.NoError(t, err)
	assert.False(t, status.Favorite)
	assert.Nil(t, status.Movie)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_FavoriteFromCatalog(t *testing.T) {
	repo, mock := newMockRepo(t)
	source := &fakeSource{
		movies:   map[int64]*entity.Movie{550: sampleMovie()},
		reviews:  sampleReviews(),
		trailers: sampleTrailers(),
	}
	svc := NewFavoriteService(repo, source, testImages, zap.NewNop())

	mock.ExpectQuery(`FROM movies WHERE movie_id = \$1`).
		WithArgs(int64(550)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectBegin()
	expectExists(mock, 550, false)
	mock.ExpectQuery(`INSERT INTO movies`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(7)))
	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO trailers`).
		WillReturnRows(pgxmock.NewRows([]string{"_id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	detail, added, err := svc.FavoriteFromCatalog(context.Background(), 550)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, detail.Favorite)
	assert.Len(t, detail.Reviews, 1)
	require.Len(t, detail.Trailers, 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=SUXWAEX2jlg", detail.Trailers[0].URL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteService_FavoriteFromCatalog_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewFavoriteService(repo, &fakeSource{}, testImages, zap.NewNop())

	mock.ExpectQuery(`FROM movies WHERE movie_id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(pgx.ErrNoRows)

	_, _, err := svc.FavoriteFromCatalog(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMovieNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
