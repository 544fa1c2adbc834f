package entity

import (
	"time"
)

// Base carries the store-local row id. RowID is zero until the record is
// persisted.
type Base struct {
	RowID     int64     `db:"_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// Persisted reports whether the record was read from or written to the store.
func (b Base) Persisted() bool {
	return b.RowID > 0
}
