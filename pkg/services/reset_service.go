package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// tableDeleter clears one derived table inside the caller's transaction.
type tableDeleter func(ctx context.Context, q database.Querier) error

// ResetService clears derived tables through their owning repositories.
// ResetAll is the one operation allowed to delete audit entries.
type ResetService interface {
	// ResetTable clears a single derived table. Unknown names are a
	// ValidationError and touch nothing.
	ResetTable(ctx context.Context, table string) error

	// ResetAll clears every derived table plus the audit log in one
	// transaction, then records the reset as the first fresh entry.
	ResetAll(ctx context.Context) error
}

type resetService struct {
	store     database.Store
	deleters  map[string]tableDeleter
	auditRepo repositories.AuditRepository
	audit     AuditService
	logger    *zap.Logger
}

// NewResetService creates a ResetService over the derived-table
// repositories. The deleter set doubles as the whitelist of resettable
// tables; catalog tables are deliberately absent.
func NewResetService(
	store database.Store,
	dotations repositories.DotationRepository,
	gaps repositories.TrainingGapRepository,
	budget repositories.BudgetRepository,
	compliance repositories.ComplianceRepository,
	assignments repositories.AssignmentRepository,
	auditRepo repositories.AuditRepository,
	audit AuditService,
	logger *zap.Logger,
) ResetService {
	return &resetService{
		store: store,
		deleters: map[string]tableDeleter{
			"dotations":            dotations.DeleteAll,
			"training_gaps":        gaps.DeleteAll,
			"budget_lines":         budget.DeleteLines,
			"budget_summaries":     budget.DeleteSummaries,
			"compliance_results":   compliance.DeleteResults,
			"training_assignments": assignments.DeleteAll,
		},
		auditRepo: auditRepo,
		audit:     audit,
		logger:    logger.Named("reset-service"),
	}
}

var _ ResetService = (*resetService)(nil)

func (s *resetService) ResetTable(ctx context.Context, table string) error {
	deleter, ok := s.deleters[table]
	if !ok {
		return apperrors.NewValidationError("table", fmt.Sprintf("unknown derived table %q", table))
	}

	err := s.store.WithinTx(ctx, func(q database.Querier) error {
		return deleter(ctx, q)
	})
	if err != nil {
		return err
	}

	detail := fmt.Sprintf("tabla derivada %s restablecida", table)
	if err := s.audit.Append(ctx, models.AuditModuleAdministracion, models.AuditActionReset, detail); err != nil {
		return err
	}
	s.logger.Info("Derived table reset", zap.String("table", table))
	return nil
}

func (s *resetService) ResetAll(ctx context.Context) error {
	err := s.store.WithinTx(ctx, func(q database.Querier) error {
		for _, deleter := range s.deleters {
			if err := deleter(ctx, q); err != nil {
				return err
			}
		}
		return s.auditRepo.DeleteAll(ctx, q)
	})
	if err != nil {
		return err
	}

	if err := s.audit.Append(ctx, models.AuditModuleAdministracion, models.AuditActionReset,
		"plan completo restablecido: tablas derivadas y bitácora vaciadas"); err != nil {
		return err
	}
	s.logger.Info("Full plan reset complete")
	return nil
}
