package wire

import (
	"movie-favorites/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFavorite(r chi.Router, favoriteHandler *adaptor.FavoriteHandler) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Get("/", favoriteHandler.GetFavorites)
		r.Post("/", favoriteHandler.AddFavorite)
		r.Get("/{id}", favoriteHandler.GetFavorite)
		r.Delete("/{id}", favoriteHandler.RemoveFavorite)
	})
}
