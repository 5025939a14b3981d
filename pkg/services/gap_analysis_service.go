package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// competencyLevelScale maps a role's competency-level label to the
// numeric 1-5 base level.
var competencyLevelScale = map[string]int{
	models.LevelExperto:      5,
	models.LevelAvanzado:     4,
	models.LevelCompetente:   3,
	models.LevelBasico:       2,
	models.LevelConocimiento: 1,
}

const (
	// defaultBaseLevel applies when a role carries an unmapped label.
	defaultBaseLevel = 3

	// baselineCurrentLevel is a seeding policy: new hires start at
	// proficiency 1, not a measured value.
	baselineCurrentLevel = 1

	maxCompetencyLevel = 5
)

// GapResult reports the outcome of a gap-matrix recompute.
type GapResult struct {
	EntriesCreated int `json:"entries_created"`
}

// GapAnalysisService derives the role x competency training-gap matrix.
// It owns the training_gaps table.
type GapAnalysisService interface {
	// Recompute wipes and regenerates the full gap matrix in one
	// transaction. Empty role or competency catalogs yield zero entries
	// without error and leave the table untouched.
	Recompute(ctx context.Context) (*GapResult, error)

	// List returns the current gap matrix.
	List(ctx context.Context) ([]*models.TrainingGapEntry, error)
}

type gapAnalysisService struct {
	catalog repositories.CatalogRepository
	gaps    repositories.TrainingGapRepository
	audit   AuditService
	logger  *zap.Logger
}

// NewGapAnalysisService creates a new GapAnalysisService.
func NewGapAnalysisService(
	catalog repositories.CatalogRepository,
	gaps repositories.TrainingGapRepository,
	audit AuditService,
	logger *zap.Logger,
) GapAnalysisService {
	return &gapAnalysisService{
		catalog: catalog,
		gaps:    gaps,
		audit:   audit,
		logger:  logger.Named("gap-analysis-service"),
	}
}

var _ GapAnalysisService = (*gapAnalysisService)(nil)

func (s *gapAnalysisService) Recompute(ctx context.Context) (*GapResult, error) {
	roles, err := s.catalog.ListRoles(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleBrechas, err)
	}
	competencies, err := s.catalog.ListCompetencies(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleBrechas, err)
	}
	if len(roles) == 0 || len(competencies) == 0 {
		s.logger.Warn("Gap analysis skipped: empty role or competency catalog")
		return &GapResult{EntriesCreated: 0}, nil
	}

	var entries []*models.TrainingGapEntry
	for _, role := range roles {
		// Day-shift and management roles are assumed pre-qualified; only
		// rotating roles enter the matrix.
		if role.IsDayShift() {
			continue
		}
		base, ok := competencyLevelScale[role.CompetencyLevel]
		if !ok {
			base = defaultBaseLevel
		}
		for _, comp := range competencies {
			required := base
			if comp.Category == models.CompetencyCategorySeguridad {
				required++
				if required > maxCompetencyLevel {
					required = maxCompetencyLevel
				}
			}
			gap := required - baselineCurrentLevel
			if gap <= 0 {
				continue
			}

			severity, hours, method := classifyGap(gap)
			priority := models.GapPriorityPreCommissioning
			if comp.Category == models.CompetencyCategorySeguridad {
				priority = models.GapPriorityPreIngreso
			}

			entries = append(entries, &models.TrainingGapEntry{
				RoleID:         role.ID,
				CompetencyID:   comp.ID,
				RequiredLevel:  required,
				CurrentLevel:   baselineCurrentLevel,
				Gap:            gap,
				Severity:       severity,
				Method:         method,
				EstimatedHours: hours,
				Priority:       priority,
			})
		}
	}

	if err := s.gaps.ReplaceAll(ctx, entries); err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleBrechas, err)
	}

	detail := fmt.Sprintf("matriz de brechas regenerada: %d registros", len(entries))
	if err := s.audit.Append(ctx, models.AuditModuleBrechas, models.AuditActionRecompute, detail); err != nil {
		return nil, err
	}

	s.logger.Info("Gap analysis complete", zap.Int("entries", len(entries)))
	return &GapResult{EntriesCreated: len(entries)}, nil
}

// classifyGap maps a positive gap to its severity tier, estimated hours,
// and training method.
func classifyGap(gap int) (severity string, hours int, method string) {
	switch {
	case gap >= 3:
		return models.GapSeverityCritica, 40, "Aula + Práctica + OJT"
	case gap == 2:
		return models.GapSeveritySignificativa, 24, "Aula + Práctica"
	default:
		return models.GapSeverityMenor, 8, "E-Learning + Evaluación"
	}
}

func (s *gapAnalysisService) List(ctx context.Context) ([]*models.TrainingGapEntry, error) {
	return s.gaps.List(ctx)
}
