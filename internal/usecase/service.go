package usecase

import (
	"errors"

	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/repository"
	"movie-favorites/internal/notify"

	"go.uber.org/zap"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrRefreshRunning = errors.New("refresh already running")
)

type Service struct {
	Favorite FavoriteService
	Catalog  CatalogService
	Refresh  RefreshService
}

// NewService wires the services. source serves interactive requests;
// refreshSource serves background refresh runs.
func NewService(
	repo *repository.Repository,
	source catalog.Source,
	refreshSource catalog.Source,
	images catalog.Images,
	notifier notify.Notifier,
	log *zap.Logger,
) *Service {
	favorite := NewFavoriteService(repo, source, images, log)
	return &Service{
		Favorite: favorite,
		Catalog:  NewCatalogService(repo, source, images, log),
		Refresh:  NewRefreshService(favorite, refreshSource, notifier, log),
	}
}
