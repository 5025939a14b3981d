package repositories

import (
	"context"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// TrainingGapRepository provides data access for the derived gap matrix.
type TrainingGapRepository interface {
	// List returns all gap entries ordered by role then competency.
	List(ctx context.Context) ([]*models.TrainingGapEntry, error)

	// ReplaceAll atomically wipes the gap table and inserts the given set.
	ReplaceAll(ctx context.Context, entries []*models.TrainingGapEntry) error

	// DeleteAll removes every gap entry using the caller's transaction.
	DeleteAll(ctx context.Context, q database.Querier) error
}

type trainingGapRepository struct {
	store database.Store
}

// NewTrainingGapRepository creates a TrainingGapRepository backed by the store.
func NewTrainingGapRepository(store database.Store) TrainingGapRepository {
	return &trainingGapRepository{store: store}
}

var _ TrainingGapRepository = (*trainingGapRepository)(nil)

func (r *trainingGapRepository) List(ctx context.Context) ([]*models.TrainingGapEntry, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, role_id, competency_id, required_level, current_level, gap,
		       severity, method, estimated_hours, priority
		FROM training_gaps
		ORDER BY role_id, competency_id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list training gaps", err)
	}
	defer rows.Close()

	var entries []*models.TrainingGapEntry
	for rows.Next() {
		var e models.TrainingGapEntry
		if err := rows.Scan(&e.ID, &e.RoleID, &e.CompetencyID, &e.RequiredLevel,
			&e.CurrentLevel, &e.Gap, &e.Severity, &e.Method, &e.EstimatedHours,
			&e.Priority); err != nil {
			return nil, apperrors.NewStoreError("scan training gap", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate training gaps", err)
	}
	return entries, nil
}

func (r *trainingGapRepository) ReplaceAll(ctx context.Context, entries []*models.TrainingGapEntry) error {
	return r.store.WithinTx(ctx, func(q database.Querier) error {
		if err := r.DeleteAll(ctx, q); err != nil {
			return err
		}
		for _, e := range entries {
			_, err := q.Exec(ctx, `
				INSERT INTO training_gaps (role_id, competency_id, required_level,
				                           current_level, gap, severity, method,
				                           estimated_hours, priority)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				e.RoleID, e.CompetencyID, e.RequiredLevel, e.CurrentLevel, e.Gap,
				e.Severity, e.Method, e.EstimatedHours, e.Priority)
			if err != nil {
				return apperrors.NewStoreError("insert training gap", err)
			}
		}
		return nil
	})
}

func (r *trainingGapRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	if _, err := q.Exec(ctx, `DELETE FROM training_gaps`); err != nil {
		return apperrors.NewStoreError("delete training gaps", err)
	}
	return nil
}
