package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// newResetFixture wires the reset service over real repositories so the
// executed DELETE statements land in the mock store.
func newResetFixture(store *mockStore) (ResetService, *mockAuditRepository) {
	auditRepo := &mockAuditRepository{}
	svc := NewResetService(store,
		repositories.NewDotationRepository(store),
		repositories.NewTrainingGapRepository(store),
		repositories.NewBudgetRepository(store),
		repositories.NewComplianceRepository(store),
		repositories.NewAssignmentRepository(store),
		repositories.NewAuditRepository(store),
		NewAuditService(auditRepo, zap.NewNop()),
		zap.NewNop())
	return svc, auditRepo
}

func TestResetService_ResetTable(t *testing.T) {
	store := &mockStore{}
	svc, auditRepo := newResetFixture(store)

	err := svc.ResetTable(context.Background(), "dotations")
	require.NoError(t, err)

	require.Len(t, store.executed, 1)
	assert.Equal(t, "DELETE FROM dotations", store.executed[0])
	assert.True(t, store.committed)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, models.AuditModuleAdministracion, auditRepo.entries[0].Module)
	assert.Equal(t, models.AuditActionReset, auditRepo.entries[0].Action)
	assert.Contains(t, auditRepo.entries[0].Detail, "dotations")
}

func TestResetService_ResetTable_UnknownTable(t *testing.T) {
	store := &mockStore{}
	svc, auditRepo := newResetFixture(store)

	err := svc.ResetTable(context.Background(), "roles")
	assert.True(t, apperrors.IsValidation(err), "catalog tables must not be resettable")
	assert.Empty(t, store.executed, "unknown table must touch nothing")
	assert.Empty(t, auditRepo.entries)

	err = svc.ResetTable(context.Background(), "dotations; DROP TABLE roles")
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, store.executed)
}

func TestResetService_ResetAll(t *testing.T) {
	store := &mockStore{}
	svc, auditRepo := newResetFixture(store)

	err := svc.ResetAll(context.Background())
	require.NoError(t, err)

	// Every derived table plus the audit log, all in one transaction.
	assert.Len(t, store.executed, 7)
	assert.Contains(t, store.executed, "DELETE FROM audit_log")
	assert.Contains(t, store.executed, "DELETE FROM dotations")
	assert.Contains(t, store.executed, "DELETE FROM training_gaps")
	assert.Contains(t, store.executed, "DELETE FROM budget_lines")
	assert.Contains(t, store.executed, "DELETE FROM budget_summaries")
	assert.Contains(t, store.executed, "DELETE FROM compliance_results")
	assert.Contains(t, store.executed, "DELETE FROM training_assignments")
	assert.True(t, store.committed)

	// The reset itself is the first entry of the fresh trail.
	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, models.AuditActionReset, auditRepo.entries[0].Action)
}

func TestResetService_ResetAll_FailureSkipsCommitAndAudit(t *testing.T) {
	store := &mockStore{execErr: errors.New("relation is locked")}
	svc, auditRepo := newResetFixture(store)

	err := svc.ResetAll(context.Background())
	require.Error(t, err)

	var storeErr *apperrors.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.False(t, store.committed)
	assert.Empty(t, auditRepo.entries)
}
