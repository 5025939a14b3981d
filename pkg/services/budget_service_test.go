package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/models"
)

func newBudgetFixture(catalog *mockCatalogRepository, dotations *mockDotationRepository) (BudgetService, *mockBudgetRepository, *mockAuditRepository) {
	budget := &mockBudgetRepository{}
	auditRepo := &mockAuditRepository{}
	svc := NewBudgetService(catalog, dotations, budget, NewAuditService(auditRepo, zap.NewNop()), zap.NewNop())
	return svc, budget, auditRepo
}

func TestBudgetService_Recompute_BurdenFactor(t *testing.T) {
	catalog := &mockCatalogRepository{
		roles: []*models.Role{
			{ID: 7, Title: "Técnico Mecánico", BaseSalary: 3000000},
		},
	}
	dotations := &mockDotationRepository{
		dotations: []*models.Dotation{{RoleID: 7, HeadcountTotal: 15}},
	}
	svc, budget, _ := newBudgetFixture(catalog, dotations)

	result, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	require.Len(t, budget.lines, 1)
	line := budget.lines[0]
	assert.InDelta(t, 1.4675, line.BurdenFactor, 1e-9)
	// 3,000,000 * 12 * 1.4675 = 52,830,000 per person.
	assert.InDelta(t, 52830000, line.AnnualCostPerPerson, 1e-6)
	assert.Equal(t, 15, line.Headcount)
	assert.InDelta(t, 52830000*15, line.TotalCost, 1e-6)
	assert.InDelta(t, line.TotalCost, result.StaffingCost, 1e-6)
}

func TestBudgetService_Recompute_RoleWithoutDotationBudgetsOnePerson(t *testing.T) {
	catalog := &mockCatalogRepository{
		roles: []*models.Role{
			{ID: 3, Title: "Ingeniero de Comisionamiento", BaseSalary: 5200000},
		},
	}
	svc, budget, _ := newBudgetFixture(catalog, &mockDotationRepository{})

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	require.Len(t, budget.lines, 1)
	assert.Equal(t, 1, budget.lines[0].Headcount)
}

func TestBudgetService_Recompute_SummaryRows(t *testing.T) {
	catalog := &mockCatalogRepository{
		roles: []*models.Role{
			{ID: 1, BaseSalary: 2000000},
		},
		courses: []*models.Course{
			{ID: 1, EstimatedCost: 10000000},
			{ID: 2, EstimatedCost: 8000000},
		},
	}
	dotations := &mockDotationRepository{
		dotations: []*models.Dotation{{RoleID: 1, HeadcountTotal: 10}},
	}
	svc, budget, _ := newBudgetFixture(catalog, dotations)

	result, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 18000000, result.TrainingCost, 1e-6)
	assert.InDelta(t, result.StaffingCost+result.TrainingCost, result.TotalCost, 1e-6)

	require.Len(t, budget.summaries, 3)
	staffing, training, total := budget.summaries[0], budget.summaries[1], budget.summaries[2]

	assert.Equal(t, models.BudgetCategoryStaffing, staffing.Category)
	assert.Equal(t, models.BudgetCategoryTraining, training.Category)
	assert.Equal(t, models.BudgetCategoryTotal, total.Category)

	assert.InDelta(t, 100, staffing.PercentOfTotal+training.PercentOfTotal, 1e-9)
	assert.Equal(t, 100.0, total.PercentOfTotal)
	assert.InDelta(t, result.TotalCost, total.AnnualAmount, 1e-6)
}

func TestBudgetService_Recompute_EmptyCatalogProducesZeroTotals(t *testing.T) {
	svc, budget, _ := newBudgetFixture(&mockCatalogRepository{}, &mockDotationRepository{})

	result, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.TotalCost)

	require.Len(t, budget.summaries, 3)
	// No division by zero: non-total percentages collapse to 0.
	assert.Equal(t, 0.0, budget.summaries[0].PercentOfTotal)
	assert.Equal(t, 0.0, budget.summaries[1].PercentOfTotal)
	assert.Equal(t, 100.0, budget.summaries[2].PercentOfTotal)
}

func TestBudgetService_Recompute_AuditFailureKeepsCommittedRows(t *testing.T) {
	catalog := &mockCatalogRepository{
		roles: []*models.Role{{ID: 1, BaseSalary: 1000000}},
	}
	budget := &mockBudgetRepository{}
	auditRepo := &mockAuditRepository{appendErr: errors.New("audit_log unavailable")}
	svc := NewBudgetService(catalog, &mockDotationRepository{}, budget,
		NewAuditService(auditRepo, zap.NewNop()), zap.NewNop())

	_, err := svc.Recompute(context.Background())
	require.Error(t, err)

	// Budget tables were rebuilt before the append failed.
	assert.Len(t, budget.lines, 1)
	assert.Len(t, budget.summaries, 3)
	assert.Empty(t, auditRepo.entries)
}

func TestBudgetService_Recompute_WritesAuditEntry(t *testing.T) {
	catalog := &mockCatalogRepository{
		roles: []*models.Role{{ID: 1, BaseSalary: 1000000}},
	}
	svc, _, auditRepo := newBudgetFixture(catalog, &mockDotationRepository{})

	_, err := svc.Recompute(context.Background())
	require.NoError(t, err)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, models.AuditModulePresupuesto, auditRepo.entries[0].Module)
	assert.Equal(t, models.AuditActionRecompute, auditRepo.entries[0].Action)
}
