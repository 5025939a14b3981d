package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// Fixed burden rates applied uniformly to every role. The resulting
// burden factor is 1.4675.
const (
	socialChargesRate = 0.25
	legalBonusRate    = 0.0475
	vacationRate      = 0.07
	benefitsRate      = 0.10

	monthsPerYear = 12
)

// BudgetResult reports the outcome of a budget recompute.
type BudgetResult struct {
	StaffingCost float64 `json:"staffing_cost"`
	TrainingCost float64 `json:"training_cost"`
	TotalCost    float64 `json:"total_cost"`
}

// BudgetOverview bundles the read side for the budget endpoints.
type BudgetOverview struct {
	Lines     []*models.BudgetLine    `json:"lines"`
	Summaries []*models.BudgetSummary `json:"summaries"`
}

// BudgetService derives the fully-loaded personnel budget. It owns the
// budget_lines and budget_summaries tables.
type BudgetService interface {
	// Recompute rebuilds budget lines and summary rows in one transaction.
	Recompute(ctx context.Context) (*BudgetResult, error)

	// Overview returns the current budget lines and summaries.
	Overview(ctx context.Context) (*BudgetOverview, error)
}

type budgetService struct {
	catalog   repositories.CatalogRepository
	dotations repositories.DotationRepository
	budget    repositories.BudgetRepository
	audit     AuditService
	logger    *zap.Logger
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(
	catalog repositories.CatalogRepository,
	dotations repositories.DotationRepository,
	budget repositories.BudgetRepository,
	audit AuditService,
	logger *zap.Logger,
) BudgetService {
	return &budgetService{
		catalog:   catalog,
		dotations: dotations,
		budget:    budget,
		audit:     audit,
		logger:    logger.Named("budget-service"),
	}
}

var _ BudgetService = (*budgetService)(nil)

func (s *budgetService) Recompute(ctx context.Context) (*BudgetResult, error) {
	roles, err := s.catalog.ListRoles(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModulePresupuesto, err)
	}
	dotations, err := s.dotations.List(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModulePresupuesto, err)
	}
	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModulePresupuesto, err)
	}

	headcountByRole := make(map[int]int, len(dotations))
	for _, d := range dotations {
		headcountByRole[d.RoleID] = d.HeadcountTotal
	}

	burdenFactor := 1 + socialChargesRate + legalBonusRate + vacationRate + benefitsRate

	var staffingCost float64
	lines := make([]*models.BudgetLine, 0, len(roles))
	for _, role := range roles {
		headcount, ok := headcountByRole[role.ID]
		if !ok {
			// Role without a staffing recompute yet still budgets one person.
			headcount = 1
		}
		annualPerPerson := role.BaseSalary * monthsPerYear * burdenFactor
		totalCost := annualPerPerson * float64(headcount)
		staffingCost += totalCost

		lines = append(lines, &models.BudgetLine{
			RoleID:              role.ID,
			Headcount:           headcount,
			BaseSalary:          role.BaseSalary,
			SocialCharges:       socialChargesRate,
			LegalBonus:          legalBonusRate,
			Vacation:            vacationRate,
			Benefits:            benefitsRate,
			BurdenFactor:        burdenFactor,
			AnnualCostPerPerson: annualPerPerson,
			TotalCost:           totalCost,
		})
	}

	var trainingCost float64
	for _, c := range courses {
		trainingCost += c.EstimatedCost
	}

	grandTotal := staffingCost + trainingCost
	percentOf := func(amount float64) float64 {
		if grandTotal == 0 {
			return 0
		}
		return amount / grandTotal * 100
	}

	summaries := []*models.BudgetSummary{
		{
			Category:       models.BudgetCategoryStaffing,
			Subcategory:    "Remuneraciones",
			AnnualAmount:   staffingCost,
			PercentOfTotal: percentOf(staffingCost),
		},
		{
			Category:       models.BudgetCategoryTraining,
			Subcategory:    "Programa de Entrenamiento",
			AnnualAmount:   trainingCost,
			PercentOfTotal: percentOf(trainingCost),
		},
		{
			Category:       models.BudgetCategoryTotal,
			AnnualAmount:   grandTotal,
			PercentOfTotal: 100,
		},
	}

	if err := s.budget.ReplaceAll(ctx, lines, summaries); err != nil {
		return nil, apperrors.NewRecomputeError(models.AuditModulePresupuesto, err)
	}

	detail := fmt.Sprintf("presupuesto regenerado: OPEX total %.0f", grandTotal)
	if err := s.audit.Append(ctx, models.AuditModulePresupuesto, models.AuditActionRecompute, detail); err != nil {
		return nil, err
	}

	s.logger.Info("Budget recompute complete",
		zap.Float64("staffing_cost", staffingCost),
		zap.Float64("training_cost", trainingCost),
		zap.Float64("total_cost", grandTotal))

	return &BudgetResult{
		StaffingCost: staffingCost,
		TrainingCost: trainingCost,
		TotalCost:    grandTotal,
	}, nil
}

func (s *budgetService) Overview(ctx context.Context) (*BudgetOverview, error) {
	lines, err := s.budget.ListLines(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := s.budget.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return &BudgetOverview{Lines: lines, Summaries: summaries}, nil
}
