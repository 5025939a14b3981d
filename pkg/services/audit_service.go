package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// AuditService is the append-only audit sink every recompute reports to.
// It is injected into each component at construction time.
type AuditService interface {
	// Append records one audit entry. The actor defaults to "system".
	Append(ctx context.Context, module, action, detail string) error

	// List returns the most recent audit entries, newest first.
	List(ctx context.Context, limit int) ([]*models.AuditLogEntry, error)
}

type auditService struct {
	repo   repositories.AuditRepository
	logger *zap.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(repo repositories.AuditRepository, logger *zap.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.Named("audit-service"),
	}
}

var _ AuditService = (*auditService)(nil)

func (s *auditService) Append(ctx context.Context, module, action, detail string) error {
	entry := &models.AuditLogEntry{
		Module: module,
		Action: action,
		Detail: detail,
		Actor:  models.DefaultAuditActor,
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			zap.String("module", module),
			zap.String("action", action),
			zap.Error(err))
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *auditService) List(ctx context.Context, limit int) ([]*models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.repo.List(ctx, limit)
}
