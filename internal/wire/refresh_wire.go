package wire

import (
	"movie-favorites/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRefresh(r chi.Router, refreshHandler *adaptor.RefreshHandler) {
	r.Get("/api/refresh", refreshHandler.GetRefresh)
	r.Post("/api/refresh", refreshHandler.TriggerRefresh)
}
