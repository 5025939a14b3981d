package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// AssignmentRepository provides data access for training assignments, the
// one entity with incremental user-driven state.
type AssignmentRepository interface {
	List(ctx context.Context) ([]*models.TrainingAssignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TrainingAssignment, error)
	Create(ctx context.Context, a *models.TrainingAssignment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, completedAt *time.Time) error

	// DeleteAll removes every assignment using the caller's transaction.
	DeleteAll(ctx context.Context, q database.Querier) error
}

type assignmentRepository struct {
	store database.Store
}

// NewAssignmentRepository creates an AssignmentRepository backed by the store.
func NewAssignmentRepository(store database.Store) AssignmentRepository {
	return &assignmentRepository{store: store}
}

var _ AssignmentRepository = (*assignmentRepository)(nil)

func (r *assignmentRepository) List(ctx context.Context) ([]*models.TrainingAssignment, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, role_id, course_id, quantity, status, assigned_at, completed_at, notes
		FROM training_assignments
		ORDER BY assigned_at, id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list assignments", err)
	}
	defer rows.Close()

	var assignments []*models.TrainingAssignment
	for rows.Next() {
		var a models.TrainingAssignment
		if err := rows.Scan(&a.ID, &a.RoleID, &a.CourseID, &a.Quantity, &a.Status,
			&a.AssignedAt, &a.CompletedAt, &a.Notes); err != nil {
			return nil, apperrors.NewStoreError("scan assignment", err)
		}
		assignments = append(assignments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate assignments", err)
	}
	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TrainingAssignment, error) {
	row := r.store.QueryRow(ctx, `
		SELECT id, role_id, course_id, quantity, status, assigned_at, completed_at, notes
		FROM training_assignments
		WHERE id = $1`, id)

	var a models.TrainingAssignment
	err := row.Scan(&a.ID, &a.RoleID, &a.CourseID, &a.Quantity, &a.Status,
		&a.AssignedAt, &a.CompletedAt, &a.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStoreError("get assignment", err)
	}
	return &a, nil
}

func (r *assignmentRepository) Create(ctx context.Context, a *models.TrainingAssignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	_, err := r.store.Exec(ctx, `
		INSERT INTO training_assignments (id, role_id, course_id, quantity, status,
		                                  assigned_at, completed_at, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.RoleID, a.CourseID, a.Quantity, a.Status, a.AssignedAt,
		a.CompletedAt, a.Notes)
	if err != nil {
		return apperrors.NewStoreError("create assignment", err)
	}
	return nil
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, completedAt *time.Time) error {
	tag, err := r.store.Exec(ctx, `
		UPDATE training_assignments
		SET status = $2, completed_at = $3
		WHERE id = $1`, id, status, completedAt)
	if err != nil {
		return apperrors.NewStoreError("update assignment status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *assignmentRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	if _, err := q.Exec(ctx, `DELETE FROM training_assignments`); err != nil {
		return apperrors.NewStoreError("delete assignments", err)
	}
	return nil
}
