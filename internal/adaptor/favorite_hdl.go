package adaptor

import (
	"net/http"

	"movie-favorites/internal/dto/request"
	"movie-favorites/internal/usecase"
	"movie-favorites/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	service usecase.FavoriteService
	log     *zap.Logger
}

func NewFavoriteHandler(service usecase.FavoriteService, log *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
		log:     log.With(zap.String("handler", "favorite")),
	}
}

// GetFavorites handles GET /api/favorites
func (h *FavoriteHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	favorites, err := h.service.ListFavorites(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list favorites")
		return
	}

	utils.ResponseSuccess(w, "Favorites retrieved successfully", favorites)
}

// GetFavorite handles GET /api/favorites/{id}. A movie that is not a
// favorite still answers 200 with favorite=false.
func (h *FavoriteHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	status, err := h.service.GetFavorite(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get favorite")
		return
	}

	utils.ResponseSuccess(w, "Favorite status retrieved successfully", status)
}

// AddFavorite handles POST /api/favorites
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req request.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, added, err := h.service.FavoriteFromCatalog(r.Context(), req.MovieID)
	if err != nil {
		handleServiceError(w, h.log, err, "add favorite")
		return
	}

	if !added {
		utils.ResponseSuccess(w, "Movie is already a favorite", movie)
		return
	}
	utils.ResponseCreated(w, "Favorite added successfully", movie)
}

// RemoveFavorite handles DELETE /api/favorites/{id}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	movieID, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	removed, err := h.service.RemoveFavorite(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "remove favorite")
		return
	}

	if !removed {
		utils.ResponseNotFound(w, "Movie is not a favorite")
		return
	}
	utils.ResponseSuccess(w, "Favorite removed successfully", nil)
}
