package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// CheckResult bundles the freshly evaluated rule results.
type CheckResult struct {
	Results []*models.ComplianceResult `json:"results"`
}

// ComplianceService evaluates the fixed rule catalog against the current
// dataset. It owns the compliance_results table.
type ComplianceService interface {
	// Check evaluates every catalog rule in insertion order, clears the
	// result table, and writes one result per rule in one transaction.
	Check(ctx context.Context) (*CheckResult, error)

	// Results returns the results of the latest check.
	Results(ctx context.Context) ([]*models.ComplianceResult, error)

	// Summary aggregates the latest check on the read side.
	Summary(ctx context.Context) (*models.ComplianceSummary, error)
}

type complianceService struct {
	catalog    repositories.CatalogRepository
	dotations  repositories.DotationRepository
	budget     repositories.BudgetRepository
	compliance repositories.ComplianceRepository
	audit      AuditService
	logger     *zap.Logger
	checks     []ruleCheck
}

// NewComplianceService creates a new ComplianceService with the default
// rule checks registered.
func NewComplianceService(
	catalog repositories.CatalogRepository,
	dotations repositories.DotationRepository,
	budget repositories.BudgetRepository,
	compliance repositories.ComplianceRepository,
	audit AuditService,
	logger *zap.Logger,
) ComplianceService {
	return &complianceService{
		catalog:    catalog,
		dotations:  dotations,
		budget:     budget,
		compliance: compliance,
		audit:      audit,
		logger:     logger.Named("compliance-service"),
		checks:     defaultRuleChecks(),
	}
}

var _ ComplianceService = (*complianceService)(nil)

func (s *complianceService) Check(ctx context.Context) (*CheckResult, error) {
	rules, err := s.compliance.ListRules(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleCumplimiento, err)
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleCumplimiento, err)
	}

	checkByCode := make(map[string]ruleCheck, len(s.checks))
	for _, c := range s.checks {
		checkByCode[c.code] = c
	}

	now := time.Now()
	results := make([]*models.ComplianceResult, 0, len(rules))
	for _, rule := range rules {
		var outcome ruleOutcome
		if check, ok := checkByCode[rule.Code]; ok {
			outcome = check.eval(snap)
		} else {
			// Catalog row without registered logic: defensive default.
			outcome = ruleOutcome{
				Status: models.ComplianceNoEvaluado,
				Score:  0,
				Risk:   rule.Severity * rule.DetectionProbability,
				Detail: "regla sin lógica de evaluación registrada",
			}
		}
		results = append(results, &models.ComplianceResult{
			RuleID:      rule.ID,
			Status:      outcome.Status,
			Score:       outcome.Score,
			Risk:        outcome.Risk,
			Detail:      outcome.Detail,
			EvaluatedAt: now,
		})
	}

	if err := s.compliance.ReplaceResults(ctx, results); err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModuleCumplimiento, err)
	}

	detail := fmt.Sprintf("%d reglas de cumplimiento evaluadas", len(results))
	if err := s.audit.Append(ctx, models.AuditModuleCumplimiento, models.AuditActionCheck, detail); err != nil {
		return nil, err
	}

	s.logger.Info("Compliance check complete", zap.Int("rules", len(results)))
	return &CheckResult{Results: results}, nil
}

func (s *complianceService) loadSnapshot(ctx context.Context) (*ruleSnapshot, error) {
	roles, err := s.catalog.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	patterns, err := s.catalog.ListShiftPatterns(ctx)
	if err != nil {
		return nil, err
	}
	dotations, err := s.dotations.List(ctx)
	if err != nil {
		return nil, err
	}
	budgetLines, err := s.budget.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	return newRuleSnapshot(roles, patterns, dotations, budgetLines, courses), nil
}

func (s *complianceService) Results(ctx context.Context) ([]*models.ComplianceResult, error) {
	return s.compliance.ListResults(ctx)
}

func (s *complianceService) Summary(ctx context.Context) (*models.ComplianceSummary, error) {
	return s.compliance.Summary(ctx)
}
