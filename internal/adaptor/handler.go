package adaptor

import (
	"context"

	"movie-favorites/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog  *CatalogHandler
	Favorite *FavoriteHandler
	Refresh  *RefreshHandler
}

func NewHandler(ctx context.Context, service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog:  NewCatalogHandler(service.Catalog, log),
		Favorite: NewFavoriteHandler(service.Favorite, log),
		Refresh:  NewRefreshHandler(ctx, service.Refresh, log),
	}
}
