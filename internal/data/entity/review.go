package entity

type Review struct {
	Base
	ReviewID   string `db:"review_id"`
	MovieRowID int64  `db:"movie_row_id"`
	Author     string `db:"author"`
	Content    string `db:"content"`
	URL        string `db:"url"`
}
