package request

type AddFavoriteRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}
