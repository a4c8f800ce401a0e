package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/database/postgres"
	"jobboard/internal/domain/savedsearch"

	"github.com/google/uuid"
)

var (
	ErrSavedSearchNotFound = errors.New("saved search not found")
	ErrSavedSearchLimit    = errors.New("saved search limit reached")
)

type SavedSearchRepository interface {
	Create(ctx context.Context, s savedsearch.SavedSearch, maxPerUser int) (savedsearch.SavedSearch, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (savedsearch.SavedSearch, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error)
	Update(ctx context.Context, s savedsearch.SavedSearch) (savedsearch.SavedSearch, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListWithAlerts(ctx context.Context) ([]savedsearch.SavedSearch, error)
	RecordAlert(ctx context.Context, id uuid.UUID, newJobs int, at time.Time) error
}

type PostgresSavedSearchRepository struct {
	db database.DB
}

func NewPostgresSavedSearchRepository(db database.DB) *PostgresSavedSearchRepository {
	return &PostgresSavedSearchRepository{db: db}
}

const savedSearchColumns = `id, user_id, name, query, alert_frequency, last_alerted_at, created_at, updated_at`

func savedSearchDest(s *savedsearch.SavedSearch) []any {
	return []any{&s.ID, &s.UserID, &s.Name, &s.Query, &s.AlertFrequency, &s.LastAlertedAt, &s.CreatedAt, &s.UpdatedAt}
}

// Create inserts s unless the user already holds maxPerUser searches.
// The count and the insert share a transaction holding a per-user
// advisory lock.
func (r *PostgresSavedSearchRepository) Create(ctx context.Context, s savedsearch.SavedSearch, maxPerUser int) (savedsearch.SavedSearch, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	var created savedsearch.SavedSearch
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "saved_searches:"+s.UserID.String()); err != nil {
			return err
		}

		var n int
		if err := tx.QueryRow(ctx, `SELECT COUNT(1) FROM saved_searches WHERE user_id = $1`, s.UserID).Scan(&n); err != nil {
			return err
		}
		if maxPerUser > 0 && n >= maxPerUser {
			return ErrSavedSearchLimit
		}

		row := tx.QueryRow(ctx,
			`INSERT INTO saved_searches (id, user_id, name, query, alert_frequency)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+savedSearchColumns,
			s.ID, s.UserID, s.Name, s.Query, s.AlertFrequency,
		)
		return row.Scan(savedSearchDest(&created)...)
	})
	if err != nil {
		return savedsearch.SavedSearch{}, err
	}
	return created, nil
}

func (r *PostgresSavedSearchRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (savedsearch.SavedSearch, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+savedSearchColumns+` FROM saved_searches WHERE id = $1 AND user_id = $2`,
		id, userID,
	)

	var s savedsearch.SavedSearch
	if err := row.Scan(savedSearchDest(&s)...); err != nil {
		if postgres.IsNoRows(err) {
			return savedsearch.SavedSearch{}, ErrSavedSearchNotFound
		}
		return savedsearch.SavedSearch{}, err
	}
	return s, nil
}

func (r *PostgresSavedSearchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error) {
	return r.list(ctx,
		`SELECT `+savedSearchColumns+` FROM saved_searches WHERE user_id = $1 ORDER BY created_at ASC, id ASC`,
		userID,
	)
}

func (r *PostgresSavedSearchRepository) Update(ctx context.Context, s savedsearch.SavedSearch) (savedsearch.SavedSearch, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE saved_searches
		 SET name = $1, query = $2, alert_frequency = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING `+savedSearchColumns,
		s.Name, s.Query, s.AlertFrequency, s.ID, s.UserID,
	)

	var updated savedsearch.SavedSearch
	if err := row.Scan(savedSearchDest(&updated)...); err != nil {
		if postgres.IsNoRows(err) {
			return savedsearch.SavedSearch{}, ErrSavedSearchNotFound
		}
		return savedsearch.SavedSearch{}, err
	}
	return updated, nil
}

func (r *PostgresSavedSearchRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_searches WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSavedSearchNotFound
	}
	return nil
}

// ListWithAlerts returns every search with alerts switched on. Whether
// one is due is decided by the caller.
func (r *PostgresSavedSearchRepository) ListWithAlerts(ctx context.Context) ([]savedsearch.SavedSearch, error) {
	return r.list(ctx,
		`SELECT `+savedSearchColumns+` FROM saved_searches WHERE alert_frequency <> '' ORDER BY last_alerted_at ASC NULLS FIRST, id ASC`,
	)
}

// RecordAlert stores the alert row and stamps last_alerted_at together.
func (r *PostgresSavedSearchRepository) RecordAlert(ctx context.Context, id uuid.UUID, newJobs int, at time.Time) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO saved_search_alerts (saved_search_id, new_jobs, created_at) VALUES ($1, $2, $3)`,
			id, newJobs, at,
		); err != nil {
			return err
		}
		n, err := tx.Exec(ctx, `UPDATE saved_searches SET last_alerted_at = $1 WHERE id = $2`, at, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrSavedSearchNotFound
		}
		return nil
	})
}

func (r *PostgresSavedSearchRepository) list(ctx context.Context, query string, args ...any) ([]savedsearch.SavedSearch, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]savedsearch.SavedSearch, 0)
	for rows.Next() {
		var s savedsearch.SavedSearch
		if err := rows.Scan(savedSearchDest(&s)...); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
