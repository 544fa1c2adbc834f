package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SchemaVersion is the only schema this build knows. There are no
// migrations between versions yet.
const SchemaVersion = 1

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		_id               BIGSERIAL PRIMARY KEY,
		movie_id          BIGINT NOT NULL UNIQUE,
		title             TEXT NOT NULL DEFAULT '',
		original_title    TEXT NOT NULL DEFAULT '',
		original_language TEXT NOT NULL DEFAULT '',
		overview          TEXT NOT NULL DEFAULT '',
		poster_path       TEXT NOT NULL DEFAULT '',
		backdrop_path     TEXT NOT NULL DEFAULT '',
		release_date      TEXT NOT NULL DEFAULT '',
		popularity        DOUBLE PRECISION NOT NULL DEFAULT 0,
		vote_count        INTEGER NOT NULL DEFAULT 0,
		vote_average      DOUBLE PRECISION NOT NULL DEFAULT 0,
		adult             BOOLEAN NOT NULL DEFAULT FALSE,
		video             BOOLEAN NOT NULL DEFAULT FALSE,
		genre_ids         INTEGER[] NOT NULL DEFAULT '{}',
		is_favorite       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		_id          BIGSERIAL PRIMARY KEY,
		review_id    TEXT NOT NULL,
		movie_row_id BIGINT NOT NULL REFERENCES movies (_id) ON DELETE CASCADE,
		author       TEXT NOT NULL DEFAULT '',
		content      TEXT NOT NULL DEFAULT '',
		url          TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_movie_row_id ON reviews (movie_row_id)`,
	`CREATE TABLE IF NOT EXISTS trailers (
		_id          BIGSERIAL PRIMARY KEY,
		trailer_id   TEXT NOT NULL,
		movie_row_id BIGINT NOT NULL REFERENCES movies (_id) ON DELETE CASCADE,
		iso_639_1    TEXT NOT NULL DEFAULT '',
		iso_3166_1   TEXT NOT NULL DEFAULT '',
		site         TEXT NOT NULL DEFAULT '',
		key          TEXT NOT NULL DEFAULT '',
		name         TEXT NOT NULL DEFAULT '',
		size         INTEGER NOT NULL DEFAULT 0,
		type         TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trailers_movie_row_id ON trailers (movie_row_id)`,
}

// Migrate creates the schema on first run and records its version. Running
// it against an existing schema of the same version is a no-op.
func (r *Repository) Migrate(ctx context.Context) error {
	log := r.log.With(zap.String("repository", "schema"))

	return r.InTx(ctx, func(tx *Repository) error {
		q := tx.q

		for _, stmt := range schemaStatements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				log.Error("Failed to apply schema statement", zap.Error(err))
				return fmt.Errorf("apply schema: %w", err)
			}
		}

		var version int
		err := q.QueryRow(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			if _, err := q.Exec(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, SchemaVersion); err != nil {
				return fmt.Errorf("record schema version: %w", err)
			}
			log.Info("Schema created", zap.Int("version", SchemaVersion))
		case err != nil:
			return fmt.Errorf("read schema version: %w", err)
		case version > SchemaVersion:
			return fmt.Errorf("schema version %d is newer than supported version %d", version, SchemaVersion)
		default:
			log.Debug("Schema up to date", zap.Int("version", version))
		}

		return nil
	})
}
