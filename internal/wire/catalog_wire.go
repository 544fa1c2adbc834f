package wire

import (
	"movie-favorites/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", catalogHandler.GetMovies)                // GET /api/movies?sort=&page=
		r.Get("/{id}", catalogHandler.GetMovie)             // GET /api/movies/{id}
		r.Get("/{id}/reviews", catalogHandler.GetReviews)   // GET /api/movies/{id}/reviews
		r.Get("/{id}/trailers", catalogHandler.GetTrailers) // GET /api/movies/{id}/trailers
	})
}
