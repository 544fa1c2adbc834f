package response

import (
	"movie-favorites/internal/data/entity"
)

type ReviewResponse struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ReviewID,
		Author:  review.Author,
		Content: review.Content,
		URL:     review.URL,
	}
}
