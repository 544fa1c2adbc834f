package entity

// Movie is a catalog entry. MovieID is assigned by the remote catalog; a
// stored movie is a favorite.
type Movie struct {
	Base
	MovieID          int64   `db:"movie_id"`
	Title            string  `db:"title"`
	OriginalTitle    string  `db:"original_title"`
	OriginalLanguage string  `db:"original_language"`
	Overview         string  `db:"overview"`
	PosterPath       string  `db:"poster_path"`
	BackdropPath     string  `db:"backdrop_path"`
	ReleaseDate      string  `db:"release_date"`
	Popularity       float64 `db:"popularity"`
	VoteCount        int     `db:"vote_count"`
	VoteAverage      float64 `db:"vote_average"`
	Adult            bool    `db:"adult"`
	Video            bool    `db:"video"`
	GenreIDs         []int32 `db:"genre_ids"`
	IsFavorite       bool    `db:"is_favorite"`
}

// Differs reports whether the catalog-facing fields of other differ from m.
// Popularity moves on every fetch and is ignored.
func (m *Movie) Differs(other *Movie) bool {
	return m.Title != other.Title ||
		m.OriginalTitle != other.OriginalTitle ||
		m.Overview != other.Overview ||
		m.PosterPath != other.PosterPath ||
		m.BackdropPath != other.BackdropPath ||
		m.ReleaseDate != other.ReleaseDate ||
		m.VoteCount != other.VoteCount ||
		m.VoteAverage != other.VoteAverage
}

// ApplyCatalog copies the catalog-facing fields of src onto m, keeping the
// local row identity and favorite flag.
func (m *Movie) ApplyCatalog(src *Movie) {
	m.Title = src.Title
	m.OriginalTitle = src.OriginalTitle
	m.OriginalLanguage = src.OriginalLanguage
	m.Overview = src.Overview
	m.PosterPath = src.PosterPath
	m.BackdropPath = src.BackdropPath
	m.ReleaseDate = src.ReleaseDate
	m.Popularity = src.Popularity
	m.VoteCount = src.VoteCount
	m.VoteAverage = src.VoteAverage
	m.Adult = src.Adult
	m.Video = src.Video
	if len(src.GenreIDs) > 0 {
		m.GenreIDs = src.GenreIDs
	}
}
