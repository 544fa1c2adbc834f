package repository

import (
	"context"

	"movie-favorites/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Movie   MovieRepository
	Review  ReviewRepository
	Trailer TrailerRepository

	db  database.PgxIface
	q   database.DBTX
	log *zap.Logger
	tx  bool
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := bind(db, log)
	r.db = db
	return r
}

func bind(q database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		Movie:   NewMovieRepository(q, log),
		Review:  NewReviewRepository(q, log),
		Trailer: NewTrailerRepository(q, log),
		q:       q,
		log:     log,
	}
}

// InTx runs fn with repositories bound to a single transaction. Calling InTx
// on an already bound Repository reuses the open transaction.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.tx {
		return fn(r)
	}
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		bound := bind(tx, r.log)
		bound.tx = true
		return fn(bound)
	})
}

// Ping checks the store connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
