package response

import (
	"movie-favorites/internal/catalog"
	"movie-favorites/internal/data/entity"
)

const (
	SourceStore   = "store"
	SourceCatalog = "catalog"
)

type MovieResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	PosterURL        string  `json:"poster_url,omitempty"`
	BackdropPath     string  `json:"backdrop_path"`
	BackdropURL      string  `json:"backdrop_url,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	VoteCount        int     `json:"vote_count"`
	VoteAverage      float64 `json:"vote_average"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	GenreIDs         []int32 `json:"genre_ids"`
	Favorite         bool    `json:"favorite"`
}

type MovieDetailResponse struct {
	MovieResponse
	Reviews  []ReviewResponse  `json:"reviews"`
	Trailers []TrailerResponse `json:"trailers"`
	Source   string            `json:"source"`
}

type FavoriteStatusResponse struct {
	MovieID  int64                `json:"movie_id"`
	Favorite bool                 `json:"favorite"`
	Movie    *MovieDetailResponse `json:"movie,omitempty"`
}

func MovieToResponse(movie *entity.Movie, images catalog.Images, favorite bool) MovieResponse {
	genreIDs := movie.GenreIDs
	if genreIDs == nil {
		genreIDs = []int32{}
	}

	return MovieResponse{
		ID:               movie.MovieID,
		Title:            movie.Title,
		OriginalTitle:    movie.OriginalTitle,
		OriginalLanguage: movie.OriginalLanguage,
		Overview:         movie.Overview,
		PosterPath:       movie.PosterPath,
		PosterURL:        images.URL(catalog.DefaultPosterSize, movie.PosterPath),
		BackdropPath:     movie.BackdropPath,
		BackdropURL:      images.URL(catalog.DefaultBackdropSize, movie.BackdropPath),
		ReleaseDate:      movie.ReleaseDate,
		Popularity:       movie.Popularity,
		VoteCount:        movie.VoteCount,
		VoteAverage:      movie.VoteAverage,
		Adult:            movie.Adult,
		Video:            movie.Video,
		GenreIDs:         genreIDs,
		Favorite:         favorite,
	}
}

func MovieToDetailResponse(movie *entity.Movie, images catalog.Images, favorite bool,
	reviews []ReviewResponse, trailers []TrailerResponse, source string) MovieDetailResponse {
	if reviews == nil {
		reviews = []ReviewResponse{}
	}
	if trailers == nil {
		trailers = []TrailerResponse{}
	}
	return MovieDetailResponse{
		MovieResponse: MovieToResponse(movie, images, favorite),
		Reviews:       reviews,
		Trailers:      trailers,
		Source:        source,
	}
}
