package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// mockCatalogRepository serves catalog reads from in-memory slices.
type mockCatalogRepository struct {
	departments  []*models.Department
	patterns     []*models.ShiftPattern
	roles        []*models.Role
	competencies []*models.Competency
	courses      []*models.Course

	listRolesErr error
}

func (m *mockCatalogRepository) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return m.departments, nil
}

func (m *mockCatalogRepository) ListShiftPatterns(ctx context.Context) ([]*models.ShiftPattern, error) {
	return m.patterns, nil
}

func (m *mockCatalogRepository) ListRoles(ctx context.Context) ([]*models.Role, error) {
	if m.listRolesErr != nil {
		return nil, m.listRolesErr
	}
	return m.roles, nil
}

func (m *mockCatalogRepository) ListCompetencies(ctx context.Context) ([]*models.Competency, error) {
	return m.competencies, nil
}

func (m *mockCatalogRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return m.courses, nil
}

// mockDotationRepository records ReplaceAll calls and serves List from
// whatever was last stored.
type mockDotationRepository struct {
	dotations  []*models.Dotation
	replaceErr error
}

func (m *mockDotationRepository) List(ctx context.Context) ([]*models.Dotation, error) {
	return m.dotations, nil
}

func (m *mockDotationRepository) ReplaceAll(ctx context.Context, dotations []*models.Dotation) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.dotations = dotations
	return nil
}

func (m *mockDotationRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	m.dotations = nil
	return nil
}

type mockTrainingGapRepository struct {
	entries    []*models.TrainingGapEntry
	replaced   bool
	replaceErr error
}

func (m *mockTrainingGapRepository) List(ctx context.Context) ([]*models.TrainingGapEntry, error) {
	return m.entries, nil
}

func (m *mockTrainingGapRepository) ReplaceAll(ctx context.Context, entries []*models.TrainingGapEntry) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.entries = entries
	m.replaced = true
	return nil
}

func (m *mockTrainingGapRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	m.entries = nil
	return nil
}

type mockBudgetRepository struct {
	lines     []*models.BudgetLine
	summaries []*models.BudgetSummary
}

func (m *mockBudgetRepository) ListLines(ctx context.Context) ([]*models.BudgetLine, error) {
	return m.lines, nil
}

func (m *mockBudgetRepository) ListSummaries(ctx context.Context) ([]*models.BudgetSummary, error) {
	return m.summaries, nil
}

func (m *mockBudgetRepository) ReplaceAll(ctx context.Context, lines []*models.BudgetLine, summaries []*models.BudgetSummary) error {
	m.lines = lines
	m.summaries = summaries
	return nil
}

func (m *mockBudgetRepository) DeleteLines(ctx context.Context, q database.Querier) error {
	m.lines = nil
	return nil
}

func (m *mockBudgetRepository) DeleteSummaries(ctx context.Context, q database.Querier) error {
	m.summaries = nil
	return nil
}

type mockComplianceRepository struct {
	rules   []*models.ComplianceRule
	results []*models.ComplianceResult
}

func (m *mockComplianceRepository) ListRules(ctx context.Context) ([]*models.ComplianceRule, error) {
	return m.rules, nil
}

func (m *mockComplianceRepository) ListResults(ctx context.Context) ([]*models.ComplianceResult, error) {
	return m.results, nil
}

func (m *mockComplianceRepository) ReplaceResults(ctx context.Context, results []*models.ComplianceResult) error {
	m.results = results
	return nil
}

func (m *mockComplianceRepository) DeleteResults(ctx context.Context, q database.Querier) error {
	m.results = nil
	return nil
}

func (m *mockComplianceRepository) Summary(ctx context.Context) (*models.ComplianceSummary, error) {
	summary := &models.ComplianceSummary{Total: len(m.results)}
	var scoreSum float64
	for _, r := range m.results {
		switch r.Status {
		case models.ComplianceCumple:
			summary.Cumple++
		case models.ComplianceNoCumple:
			summary.NoCumple++
		case models.ComplianceParcial:
			summary.Parcial++
		case models.ComplianceNoEvaluado:
			summary.NoEvaluado++
		}
		scoreSum += r.Score
	}
	if summary.Total > 0 {
		summary.AverageScore = scoreSum / float64(summary.Total)
	}
	return summary, nil
}

type mockAssignmentRepository struct {
	assignments []*models.TrainingAssignment
}

func (m *mockAssignmentRepository) List(ctx context.Context) ([]*models.TrainingAssignment, error) {
	return m.assignments, nil
}

func (m *mockAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TrainingAssignment, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockAssignmentRepository) Create(ctx context.Context, a *models.TrainingAssignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *mockAssignmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, completedAt *time.Time) error {
	for _, a := range m.assignments {
		if a.ID == id {
			a.Status = status
			a.CompletedAt = completedAt
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockAssignmentRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	m.assignments = nil
	return nil
}

type mockAuditRepository struct {
	entries   []*models.AuditLogEntry
	appendErr error
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *models.AuditLogEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) List(ctx context.Context, limit int) ([]*models.AuditLogEntry, error) {
	result := make([]*models.AuditLogEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		result = append(result, m.entries[i])
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockAuditRepository) DeleteAll(ctx context.Context, q database.Querier) error {
	m.entries = nil
	return nil
}

// mockStore is an in-memory database.Store for code paths that reach the
// store directly (reset). It records every executed statement; WithinTx
// commits only when fn succeeds.
type mockStore struct {
	executed  []string
	committed bool
	execErr   error
}

func (m *mockStore) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if m.execErr != nil {
		return pgconn.CommandTag{}, m.execErr
	}
	m.executed = append(m.executed, sql)
	return pgconn.NewCommandTag("DELETE 0"), nil
}

func (m *mockStore) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported by mock store")
}

func (m *mockStore) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *mockStore) WithinTx(ctx context.Context, fn func(q database.Querier) error) error {
	if err := fn(m); err != nil {
		return err
	}
	m.committed = true
	return nil
}
