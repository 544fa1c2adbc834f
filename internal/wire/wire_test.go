package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"
	"movie-favorites/pkg/utils"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emptySource struct{}

func (emptySource) Popular(ctx context.Context, page int) (*catalog.MoviePage, error) {
	return &catalog.MoviePage{Page: page}, nil
}

func (emptySource) TopRated(ctx context.Context, page int) (*catalog.MoviePage, error) {
	return &catalog.MoviePage{Page: page}, nil
}

func (emptySource) Movie(ctx context.Context, movieID int64) (*entity.Movie, error) {
	return nil, &catalog.Error{Kind: catalog.KindNotFound}
}

func (emptySource) Reviews(ctx context.Context, movieID int64) ([]entity.Review, error) {
	return nil, nil
}

func (emptySource) Trailers(ctx context.Context, movieID int64) ([]entity.Trailer, error) {
	return nil, nil
}

func TestBuild_Routes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	config := &utils.Config{
		Catalog: utils.CatalogConfig{ImageBaseURL: "https://image.example.org/t/p"},
		Refresh: utils.RefreshConfig{Enabled: true, Interval: time.Hour},
	}
	app := build(t.Context(), repository.NewRepository(mock, zap.NewNop()), emptySource{}, config, zap.NewNop())
	require.NotNil(t, app.RefreshJob)

	tests := []struct {
		method string
		target string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/movies?sort=popular", http.StatusOK},
		{http.MethodGet, "/api/movies?sort=bogus", http.StatusBadRequest},
		{http.MethodGet, "/api/refresh", http.StatusOK},
		{http.MethodPut, "/api/favorites/1", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestBuild_RefreshDisabled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	app := build(t.Context(), repository.NewRepository(mock, zap.NewNop()), emptySource{}, &utils.Config{}, zap.NewNop())
	assert.Nil(t, app.RefreshJob)
}
