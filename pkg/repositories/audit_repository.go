package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// AuditRepository provides data access for the append-only audit trail.
// Entries are never updated; the only delete path is the full reset.
type AuditRepository interface {
	// Append inserts a new audit entry.
	Append(ctx context.Context, entry *models.AuditLogEntry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]*models.AuditLogEntry, error)

	// DeleteAll removes every entry using the caller's transaction.
	// Only the full-reset operation uses this.
	DeleteAll(ctx context.Context, q database.Querier) error
}

type auditRepository struct {
	store database.Store
}

// NewAuditRepository creates an AuditRepository backed by the store.
func NewAuditRepository(store database.Store) AuditRepository {
	return &auditRepository{store: store}
}

var _ AuditRepository = (*auditRepository)(nil)

func (r *auditRepository) Append(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Actor == "" {
		entry.Actor = models.DefaultAuditActor
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.store.Exec(ctx, `
		INSERT INTO audit_log (id, module, action, detail, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.Module, entry.Action, entry.Detail, entry.Actor, entry.CreatedAt)
	if err != nil {
		return apperrors.NewStoreError("append audit entry", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context, limit int) ([]*models.AuditLogEntry, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, module, action, detail, actor, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, apperrors.NewStoreError("list audit entries", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.Module, &e.Action, &e.Detail, &e.Actor,
			&e.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError("scan audit entry", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate audit entries", err)
	}
	return entries, nil
}

func (r *auditRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	if _, err := q.Exec(ctx, `DELETE FROM audit_log`); err != nil {
		return apperrors.NewStoreError("delete audit entries", err)
	}
	return nil
}
