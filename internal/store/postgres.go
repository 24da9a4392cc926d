package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/model"
)

// PostgresStore implements Store on a pgx pool. Schema is managed by the
// embedded migrations in internal/migrate.
type PostgresStore struct {
	db *pgxpool.Pool

	// NewID generates suggestion ids. Overridable for tests.
	NewID func() string
}

func NewPostgres(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db, NewID: defaultNewID}
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Suggestion, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, tmdb_id, type, title, overview, poster_path, release_date, rating, added_at, watched
		FROM suggestions`)
	if err != nil {
		return nil, storageErr("list", err)
	}
	defer rows.Close()

	out := []model.Suggestion{}
	for rows.Next() {
		var sg model.Suggestion
		if err := rows.Scan(&sg.ID, &sg.TMDBID, &sg.Type, &sg.Title, &sg.Overview,
			&sg.PosterPath, &sg.ReleaseDate, &sg.Rating, &sg.AddedAt, &sg.Watched); err != nil {
			return nil, storageErr("list", err)
		}
		out = append(out, sg)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list", err)
	}
	return out, nil
}

func (s *PostgresStore) Add(ctx context.Context, payload model.NewSuggestion) error {
	if err := checkPayload(payload); err != nil {
		return err
	}
	rec := newRecord(payload, s.NewID())
	_, err := s.db.Exec(ctx, `
		INSERT INTO suggestions (id, tmdb_id, type, title, overview, poster_path, release_date, rating, added_at, watched)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.TMDBID, rec.Type, rec.Title, rec.Overview,
		rec.PosterPath, rec.ReleaseDate, rec.Rating, rec.AddedAt, rec.Watched)
	if err != nil {
		return storageErr("add", err)
	}
	return nil
}

func (s *PostgresStore) MarkWatched(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `UPDATE suggestions SET watched = TRUE WHERE id = $1`, id)
	if err != nil {
		return storageErr("mark_watched", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, id string) error {
	// Removing an id that is already gone is a no-op success.
	if _, err := s.db.Exec(ctx, `DELETE FROM suggestions WHERE id = $1`, id); err != nil {
		return storageErr("remove", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
