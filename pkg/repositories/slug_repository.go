package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ekaya-inc/entropy/pkg/apperrors"
	"github.com/ekaya-inc/entropy/pkg/database"
	"github.com/ekaya-inc/entropy/pkg/models"
	"github.com/ekaya-inc/entropy/pkg/slugs"
)

// SlugRepository provides data access for slug reservations.
// It satisfies slugs.Store.
type SlugRepository interface {
	slugs.Store
	GetByScope(ctx context.Context, scope string) ([]*models.SlugReservation, error)
}

type slugRepository struct {
	db *database.DB
}

// NewSlugRepository creates a new SlugRepository.
func NewSlugRepository(db *database.DB) SlugRepository {
	return &slugRepository{db: db}
}

var _ SlugRepository = (*slugRepository)(nil)

// Reserve inserts the reservation unless (scope, slug) is already taken, in
// which case apperrors.ErrConflict is returned. ON CONFLICT DO NOTHING keeps
// concurrent reservations race-free without relying on error codes.
func (r *slugRepository) Reserve(ctx context.Context, res *models.SlugReservation) error {
	query := `
		INSERT INTO entropy_slug_reservations (id, scope, slug, base, suffix)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scope, slug) DO NOTHING
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		uuid.New(),
		res.Scope,
		res.Slug,
		res.Base,
		res.Suffix,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to reserve slug: %w", err)
	}

	return nil
}

func (r *slugRepository) Exists(ctx context.Context, scope, slug string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM entropy_slug_reservations WHERE scope = $1 AND slug = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, scope, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *slugRepository) Release(ctx context.Context, scope, slug string) error {
	query := `DELETE FROM entropy_slug_reservations WHERE scope = $1 AND slug = $2`

	result, err := r.db.Exec(ctx, query, scope, slug)
	if err != nil {
		return fmt.Errorf("failed to release slug: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *slugRepository) GetByScope(ctx context.Context, scope string) ([]*models.SlugReservation, error) {
	query := `
		SELECT id, scope, slug, base, suffix, created_at
		FROM entropy_slug_reservations
		WHERE scope = $1
		ORDER BY base, suffix`

	rows, err := r.db.Query(ctx, query, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}
	defer rows.Close()

	var out []*models.SlugReservation
	for rows.Next() {
		var res models.SlugReservation
		if err := rows.Scan(&res.ID, &res.Scope, &res.Slug, &res.Base, &res.Suffix, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slug reservation: %w", err)
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slug reservations: %w", err)
	}

	return out, nil
}
