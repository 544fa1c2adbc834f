package request

const (
	SortPopular  = "popular"
	SortTopRated = "top_rated"
)

// MovieListRequest selects a catalog listing page.
type MovieListRequest struct {
	Sort string `json:"sort" validate:"required,oneof=popular top_rated"`
	Page int    `json:"page" validate:"min=1,max=500"`
}
