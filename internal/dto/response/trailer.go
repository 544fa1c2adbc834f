package response

import (
	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
)

type TrailerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Key          string `json:"key"`
	Site         string `json:"site"`
	Size         int    `json:"size"`
	Type         string `json:"type"`
	Language     string `json:"iso_639_1"`
	Region       string `json:"iso_3166_1"`
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func TrailerToResponse(trailer *entity.Trailer) TrailerResponse {
	resp := TrailerResponse{
		ID:       trailer.TrailerID,
		Name:     trailer.Name,
		Key:      trailer.Key,
		Site:     trailer.Site,
		Size:     trailer.Size,
		Type:     trailer.Type,
		Language: trailer.Language,
		Region:   trailer.Region,
	}
	if trailer.Site == entity.TrailerSiteYouTube && trailer.Key != "" {
		resp.URL = catalog.YouTubeURL(trailer.Key)
		resp.ThumbnailURL = catalog.YouTubeThumbnailURL(trailer.Key)
	}
	return resp
}
