package repositories

import (
	"context"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// ComplianceRepository provides data access for the rule catalog and the
// derived result table.
type ComplianceRepository interface {
	// ListRules returns the rule catalog in insertion order. Evaluation
	// and display order follow this ordering.
	ListRules(ctx context.Context) ([]*models.ComplianceRule, error)

	// ListResults returns the results of the latest check in rule order.
	ListResults(ctx context.Context) ([]*models.ComplianceResult, error)

	// ReplaceResults atomically clears and repopulates the result table.
	ReplaceResults(ctx context.Context, results []*models.ComplianceResult) error

	// DeleteResults removes every result row using the caller's transaction.
	DeleteResults(ctx context.Context, q database.Querier) error

	// Summary aggregates the current result set on the read side.
	Summary(ctx context.Context) (*models.ComplianceSummary, error)
}

type complianceRepository struct {
	store database.Store
}

// NewComplianceRepository creates a ComplianceRepository backed by the store.
func NewComplianceRepository(store database.Store) ComplianceRepository {
	return &complianceRepository{store: store}
}

var _ ComplianceRepository = (*complianceRepository)(nil)

func (r *complianceRepository) ListRules(ctx context.Context) ([]*models.ComplianceRule, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, code, description, domain, legal_source, severity, detection_probability
		FROM compliance_rules
		ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list compliance rules", err)
	}
	defer rows.Close()

	var rules []*models.ComplianceRule
	for rows.Next() {
		var rule models.ComplianceRule
		if err := rows.Scan(&rule.ID, &rule.Code, &rule.Description, &rule.Domain,
			&rule.LegalSource, &rule.Severity, &rule.DetectionProbability); err != nil {
			return nil, apperrors.NewStoreError("scan compliance rule", err)
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate compliance rules", err)
	}
	return rules, nil
}

func (r *complianceRepository) ListResults(ctx context.Context) ([]*models.ComplianceResult, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, rule_id, status, score, risk, detail, evaluated_at
		FROM compliance_results
		ORDER BY rule_id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list compliance results", err)
	}
	defer rows.Close()

	var results []*models.ComplianceResult
	for rows.Next() {
		var res models.ComplianceResult
		if err := rows.Scan(&res.ID, &res.RuleID, &res.Status, &res.Score,
			&res.Risk, &res.Detail, &res.EvaluatedAt); err != nil {
			return nil, apperrors.NewStoreError("scan compliance result", err)
		}
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate compliance results", err)
	}
	return results, nil
}

func (r *complianceRepository) ReplaceResults(ctx context.Context, results []*models.ComplianceResult) error {
	return r.store.WithinTx(ctx, func(q database.Querier) error {
		if err := r.DeleteResults(ctx, q); err != nil {
			return err
		}
		for _, res := range results {
			_, err := q.Exec(ctx, `
				INSERT INTO compliance_results (rule_id, status, score, risk, detail, evaluated_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				res.RuleID, res.Status, res.Score, res.Risk, res.Detail, res.EvaluatedAt)
			if err != nil {
				return apperrors.NewStoreError("insert compliance result", err)
			}
		}
		return nil
	})
}

func (r *complianceRepository) DeleteResults(ctx context.Context, q database.Querier) error {
	if _, err := q.Exec(ctx, `DELETE FROM compliance_results`); err != nil {
		return apperrors.NewStoreError("delete compliance results", err)
	}
	return nil
}

func (r *complianceRepository) Summary(ctx context.Context) (*models.ComplianceSummary, error) {
	row := r.store.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'CUMPLE'),
		       COUNT(*) FILTER (WHERE status = 'NO_CUMPLE'),
		       COUNT(*) FILTER (WHERE status = 'PARCIAL'),
		       COUNT(*) FILTER (WHERE status = 'NO_EVALUADO'),
		       COALESCE(AVG(score), 0)
		FROM compliance_results`)

	var s models.ComplianceSummary
	if err := row.Scan(&s.Total, &s.Cumple, &s.NoCumple, &s.Parcial,
		&s.NoEvaluado, &s.AverageScore); err != nil {
		return nil, apperrors.NewStoreError("aggregate compliance results", err)
	}
	return &s, nil
}
