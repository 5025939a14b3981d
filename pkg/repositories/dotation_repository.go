package repositories

import (
	"context"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// DotationRepository provides data access for the derived staffing table.
type DotationRepository interface {
	// List returns all dotation rows ordered by role.
	List(ctx context.Context) ([]*models.Dotation, error)

	// ReplaceAll atomically deletes every dotation row and inserts the
	// given set. A failure rolls back to the pre-call state.
	ReplaceAll(ctx context.Context, dotations []*models.Dotation) error

	// DeleteAll removes every dotation row using the caller's transaction.
	DeleteAll(ctx context.Context, q database.Querier) error
}

type dotationRepository struct {
	store database.Store
}

// NewDotationRepository creates a DotationRepository backed by the store.
func NewDotationRepository(store database.Store) DotationRepository {
	return &dotationRepository{store: store}
}

var _ DotationRepository = (*dotationRepository)(nil)

func (r *dotationRepository) List(ctx context.Context) ([]*models.Dotation, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, role_id, shift_pattern_id, persons_per_shift, crews,
		       relief_factor, headcount_total
		FROM dotations
		ORDER BY role_id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list dotations", err)
	}
	defer rows.Close()

	var dotations []*models.Dotation
	for rows.Next() {
		var d models.Dotation
		if err := rows.Scan(&d.ID, &d.RoleID, &d.ShiftPatternID, &d.PersonsPerShift,
			&d.Crews, &d.ReliefFactor, &d.HeadcountTotal); err != nil {
			return nil, apperrors.NewStoreError("scan dotation", err)
		}
		dotations = append(dotations, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate dotations", err)
	}
	return dotations, nil
}

func (r *dotationRepository) ReplaceAll(ctx context.Context, dotations []*models.Dotation) error {
	return r.store.WithinTx(ctx, func(q database.Querier) error {
		if err := r.DeleteAll(ctx, q); err != nil {
			return err
		}
		for _, d := range dotations {
			_, err := q.Exec(ctx, `
				INSERT INTO dotations (role_id, shift_pattern_id, persons_per_shift,
				                       crews, relief_factor, headcount_total)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				d.RoleID, d.ShiftPatternID, d.PersonsPerShift, d.Crews,
				d.ReliefFactor, d.HeadcountTotal)
			if err != nil {
				return apperrors.NewStoreError("insert dotation", err)
			}
		}
		return nil
	})
}

func (r *dotationRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	if _, err := q.Exec(ctx, `DELETE FROM dotations`); err != nil {
		return apperrors.NewStoreError("delete dotations", err)
	}
	return nil
}
