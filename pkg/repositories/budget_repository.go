package repositories

import (
	"context"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// BudgetRepository provides data access for the derived budget tables.
// Lines and summaries always belong to the same run, so the rebuild
// replaces both inside one transaction.
type BudgetRepository interface {
	ListLines(ctx context.Context) ([]*models.BudgetLine, error)
	ListSummaries(ctx context.Context) ([]*models.BudgetSummary, error)

	// ReplaceAll atomically clears both budget tables and inserts the
	// given line and summary sets.
	ReplaceAll(ctx context.Context, lines []*models.BudgetLine, summaries []*models.BudgetSummary) error

	// DeleteLines and DeleteSummaries remove rows using the caller's
	// transaction (reset paths).
	DeleteLines(ctx context.Context, q database.Querier) error
	DeleteSummaries(ctx context.Context, q database.Querier) error
}

type budgetRepository struct {
	store database.Store
}

// NewBudgetRepository creates a BudgetRepository backed by the store.
func NewBudgetRepository(store database.Store) BudgetRepository {
	return &budgetRepository{store: store}
}

var _ BudgetRepository = (*budgetRepository)(nil)

func (r *budgetRepository) ListLines(ctx context.Context) ([]*models.BudgetLine, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, role_id, headcount, base_salary, social_charges, legal_bonus,
		       vacation, benefits, burden_factor, annual_cost_per_person, total_cost
		FROM budget_lines
		ORDER BY role_id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list budget lines", err)
	}
	defer rows.Close()

	var lines []*models.BudgetLine
	for rows.Next() {
		var l models.BudgetLine
		if err := rows.Scan(&l.ID, &l.RoleID, &l.Headcount, &l.BaseSalary,
			&l.SocialCharges, &l.LegalBonus, &l.Vacation, &l.Benefits,
			&l.BurdenFactor, &l.AnnualCostPerPerson, &l.TotalCost); err != nil {
			return nil, apperrors.NewStoreError("scan budget line", err)
		}
		lines = append(lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate budget lines", err)
	}
	return lines, nil
}

func (r *budgetRepository) ListSummaries(ctx context.Context) ([]*models.BudgetSummary, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, category, subcategory, annual_amount, percent_of_total
		FROM budget_summaries
		ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list budget summaries", err)
	}
	defer rows.Close()

	var summaries []*models.BudgetSummary
	for rows.Next() {
		var s models.BudgetSummary
		if err := rows.Scan(&s.ID, &s.Category, &s.Subcategory, &s.AnnualAmount,
			&s.PercentOfTotal); err != nil {
			return nil, apperrors.NewStoreError("scan budget summary", err)
		}
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate budget summaries", err)
	}
	return summaries, nil
}

func (r *budgetRepository) ReplaceAll(ctx context.Context, lines []*models.BudgetLine, summaries []*models.BudgetSummary) error {
	return r.store.WithinTx(ctx, func(q database.Querier) error {
		if err := r.DeleteLines(ctx, q); err != nil {
			return err
		}
		if err := r.DeleteSummaries(ctx, q); err != nil {
			return err
		}
		for _, l := range lines {
			_, err := q.Exec(ctx, `
				INSERT INTO budget_lines (role_id, headcount, base_salary,
				                          social_charges, legal_bonus, vacation,
				                          benefits, burden_factor,
				                          annual_cost_per_person, total_cost)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				l.RoleID, l.Headcount, l.BaseSalary, l.SocialCharges, l.LegalBonus,
				l.Vacation, l.Benefits, l.BurdenFactor, l.AnnualCostPerPerson,
				l.TotalCost)
			if err != nil {
				return apperrors.NewStoreError("insert budget line", err)
			}
		}
		for _, s := range summaries {
			_, err := q.Exec(ctx, `
				INSERT INTO budget_summaries (category, subcategory, annual_amount,
				                              percent_of_total)
				VALUES ($1, $2, $3, $4)`,
				s.Category, s.Subcategory, s.AnnualAmount, s.PercentOfTotal)
			if err != nil {
				return apperrors.NewStoreError("insert budget summary", err)
			}
		}
		return nil
	})
}

func (r *budgetRepository) DeleteLines(ctx context.Context, q database.Querier) error {
	if _, err := q.Exec(ctx, `DELETE FROM budget_lines`); err != nil {
		return apperrors.NewStoreError("delete budget lines", err)
	}
	return nil
}

func (r *budgetRepository) DeleteSummaries(ctx context.Context, q database.Querier) error {
	if _, err := q.Exec(ctx, `DELETE FROM budget_summaries`); err != nil {
		return apperrors.NewStoreError("delete budget summaries", err)
	}
	return nil
}
