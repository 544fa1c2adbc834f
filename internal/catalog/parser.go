package catalog

import (
	"strings"

	"movie-favorites/internal/data/entity"

	"github.com/goccy/go-json"
)

var (
	listMovieKeys = []string{
		"id", "title", "original_title", "original_language", "overview",
		"poster_path", "backdrop_path", "release_date", "popularity",
		"vote_count", "vote_average", "adult", "video", "genre_ids",
	}
	detailMovieKeys = []string{
		"id", "title", "original_title", "original_language", "overview",
		"poster_path", "backdrop_path", "release_date", "popularity",
		"vote_count", "vote_average", "adult", "video", "genres",
	}
	reviewKeys  = []string{"id", "author", "content", "url"}
	trailerKeys = []string{"id", "iso_639_1", "iso_3166_1", "key", "name", "site", "size", "type"}
)

type movieJSON struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	Popularity       float64 `json:"popularity"`
	VoteCount        int     `json:"vote_count"`
	VoteAverage      float64 `json:"vote_average"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	GenreIDs         []int32 `json:"genre_ids"`
	Genres           []struct {
		ID int32 `json:"id"`
	} `json:"genres"`
}

type reviewJSON struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

type trailerJSON struct {
	ID       string `json:"id"`
	Language string `json:"iso_639_1"`
	Region   string `json:"iso_3166_1"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Size     int    `json:"size"`
	Type     string `json:"type"`
}

type resultsJSON struct {
	Results []json.RawMessage `json:"results"`
}

// ParseMovies maps the results array of a listing response. A record
// missing any mapped key fails the whole batch.
func ParseMovies(body []byte) ([]entity.Movie, error) {
	results, err := parseResults(body)
	if err != nil {
		return nil, err
	}

	movies := make([]entity.Movie, 0, len(results))
	for i, raw := range results {
		if err := requireKeys(raw, listMovieKeys); err != nil {
			return nil, parseError("results[%d]: %w", i, err)
		}
		var m movieJSON
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, parseError("results[%d]: %w", i, err)
		}
		movies = append(movies, m.toEntity())
	}
	return movies, nil
}

// ParseMovie maps a movie details response.
func ParseMovie(body []byte) (*entity.Movie, error) {
	if err := requireKeys(body, detailMovieKeys); err != nil {
		return nil, parseError("movie: %w", err)
	}
	var m movieJSON
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, parseError("movie: %w", err)
	}
	movie := m.toEntity()
	return &movie, nil
}

// ParseMoviePage maps a listing response together with its totals.
func ParseMoviePage(body []byte) (*MoviePage, error) {
	movies, err := ParseMovies(body)
	if err != nil {
		return nil, err
	}
	var page struct {
		Page int `json:"page"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, parseError("page: %w", err)
	}
	totalResults, err := TotalResults(body)
	if err != nil {
		return nil, err
	}
	totalPages, err := TotalPages(body)
	if err != nil {
		return nil, err
	}
	return &MoviePage{
		Page:         page.Page,
		Movies:       movies,
		TotalResults: totalResults,
		TotalPages:   totalPages,
	}, nil
}

func TotalResults(body []byte) (int, error) {
	return intField(body, "total_results")
}

func TotalPages(body []byte) (int, error) {
	return intField(body, "total_pages")
}

func ParseReviews(body []byte) ([]entity.Review, error) {
	results, err := parseResults(body)
	if err != nil {
		return nil, err
	}

	reviews := make([]entity.Review, 0, len(results))
	for i, raw := range results {
		if err := requireKeys(raw, reviewKeys); err != nil {
			return nil, parseError("results[%d]: %w", i, err)
		}
		var r reviewJSON
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, parseError("results[%d]: %w", i, err)
		}
		reviews = append(reviews, entity.Review{
			ReviewID: r.ID,
			Author:   r.Author,
			Content:  r.Content,
			URL:      r.URL,
		})
	}
	return reviews, nil
}

// ParseTrailers maps every video of a videos response; callers filter by
// site and type.
func ParseTrailers(body []byte) ([]entity.Trailer, error) {
	results, err := parseResults(body)
	if err != nil {
		return nil, err
	}

	trailers := make([]entity.Trailer, 0, len(results))
	for i, raw := range results {
		if err := requireKeys(raw, trailerKeys); err != nil {
			return nil, parseError("results[%d]: %w", i, err)
		}
		var t trailerJSON
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, parseError("results[%d]: %w", i, err)
		}
		trailers = append(trailers, entity.Trailer{
			TrailerID: t.ID,
			Language:  t.Language,
			Region:    t.Region,
			Key:       t.Key,
			Name:      t.Name,
			Site:      t.Site,
			Size:      t.Size,
			Type:      t.Type,
		})
	}
	return trailers, nil
}

func (m movieJSON) toEntity() entity.Movie {
	genreIDs := m.GenreIDs
	if len(genreIDs) == 0 && len(m.Genres) > 0 {
		genreIDs = make([]int32, len(m.Genres))
		for i, g := range m.Genres {
			genreIDs[i] = g.ID
		}
	}
	if genreIDs == nil {
		genreIDs = []int32{}
	}

	return entity.Movie{
		MovieID:          m.ID,
		Title:            m.Title,
		OriginalTitle:    m.OriginalTitle,
		OriginalLanguage: m.OriginalLanguage,
		Overview:         m.Overview,
		PosterPath:       strings.TrimPrefix(m.PosterPath, "/"),
		BackdropPath:     strings.TrimPrefix(m.BackdropPath, "/"),
		ReleaseDate:      m.ReleaseDate,
		Popularity:       m.Popularity,
		VoteCount:        m.VoteCount,
		VoteAverage:      m.VoteAverage,
		Adult:            m.Adult,
		Video:            m.Video,
		GenreIDs:         genreIDs,
	}
}

func parseResults(body []byte) ([]json.RawMessage, error) {
	if err := requireKeys(body, []string{"results"}); err != nil {
		return nil, parseError("%w", err)
	}
	var r resultsJSON
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, parseError("results: %w", err)
	}
	return r.Results, nil
}

func intField(body []byte, key string) (int, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return 0, parseError("%s: %w", key, err)
	}
	raw, ok := obj[key]
	if !ok {
		return 0, parseError("missing key %q", key)
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, parseError("%s: %w", key, err)
	}
	return n, nil
}

func requireKeys(raw []byte, keys []string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	for _, key := range keys {
		if _, ok := obj[key]; !ok {
			return &missingKeyError{key: key}
		}
	}
	return nil
}

type missingKeyError struct {
	key string
}

func (e *missingKeyError) Error() string {
	return "missing key \"" + e.key + "\""
}
