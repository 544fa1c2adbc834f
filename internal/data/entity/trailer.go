package entity

const (
	TrailerSiteYouTube = "YouTube"
	TrailerTypeTrailer = "Trailer"
)

type Trailer struct {
	Base
	TrailerID  string `db:"trailer_id"`
	MovieRowID int64  `db:"movie_row_id"`
	Language   string `db:"iso_639_1"`
	Region     string `db:"iso_3166_1"`
	Site       string `db:"site"`
	Key        string `db:"key"`
	Name       string `db:"name"`
	Size       int    `db:"size"`
	Type       string `db:"type"`
}
