package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// Staffing arithmetic. A day-shift role needs exactly its per-shift
// headcount; a rotating role needs four crews with a relief factor
// covering rest days, vacations, and absences. Rounding is always up:
// under-staffing is the unsafe direction.
const (
	rotatingCrews  = 4
	rotatingRelief = 1.22
)

// StaffingResult reports the outcome of a staffing recompute.
type StaffingResult struct {
	UpdatedCount int `json:"updated_count"`
}

// StaffingService derives the per-role staffing allocation from
// shift-pattern arithmetic. It owns the dotations table.
type StaffingService interface {
	// Recompute rebuilds the full dotation set, one row per role, inside
	// one transaction. Total: every role gets a row, no silent skips.
	Recompute(ctx context.Context) (*StaffingResult, error)

	// List returns the current dotation set.
	List(ctx context.Context) ([]*models.Dotation, error)
}

type staffingService struct {
	catalog   repositories.CatalogRepository
	dotations repositories.DotationRepository
	audit     AuditService
	logger    *zap.Logger
}

// NewStaffingService creates a new StaffingService.
func NewStaffingService(
	catalog repositories.CatalogRepository,
	dotations repositories.DotationRepository,
	audit AuditService,
	logger *zap.Logger,
) StaffingService {
	return &staffingService{
		catalog:   catalog,
		dotations: dotations,
		audit:     audit,
		logger:    logger.Named("staffing-service"),
	}
}

var _ StaffingService = (*staffingService)(nil)

func (s *staffingService) Recompute(ctx context.Context) (*StaffingResult, error) {
	roles, err := s.catalog.ListRoles(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleDotacion, err)
	}
	patterns, err := s.catalog.ListShiftPatterns(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleDotacion, err)
	}

	// First pattern of each kind anchors the dotation's pattern reference.
	var dayPattern, rotatingPattern *models.ShiftPattern
	for _, p := range patterns {
		if p.IsRotating() {
			if rotatingPattern == nil {
				rotatingPattern = p
			}
		} else if dayPattern == nil {
			dayPattern = p
		}
	}

	dotations := make([]*models.Dotation, 0, len(roles))
	for _, role := range roles {
		d := &models.Dotation{
			RoleID:          role.ID,
			PersonsPerShift: role.HeadcountPerShift,
		}
		if role.IsDayShift() {
			d.Crews = 1
			d.ReliefFactor = 1.0
			d.HeadcountTotal = role.HeadcountPerShift
			if dayPattern != nil {
				id := dayPattern.ID
				d.ShiftPatternID = &id
			}
		} else {
			d.Crews = rotatingCrews
			d.ReliefFactor = rotatingRelief
			d.HeadcountTotal = int(math.Ceil(
				float64(role.HeadcountPerShift) * rotatingCrews * rotatingRelief))
			if rotatingPattern != nil {
				id := rotatingPattern.ID
				d.ShiftPatternID = &id
			}
		}
		dotations = append(dotations, d)
	}

	if err := s.dotations.ReplaceAll(ctx, dotations); err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleDotacion, err)
	}

	detail := fmt.Sprintf("dotación recalculada para %d cargos", len(dotations))
	if err := s.audit.Append(ctx, models.AuditModuleDotacion, models.AuditActionRecompute, detail); err != nil {
		return nil, err
	}

	s.logger.Info("Staffing recompute complete", zap.Int("roles", len(dotations)))
	return &StaffingResult{UpdatedCount: len(dotations)}, nil
}

func (s *staffingService) List(ctx context.Context) ([]*models.Dotation, error) {
	return s.dotations.List(ctx)
}
