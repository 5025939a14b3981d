package repositories

import (
	"context"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/database"
	"github.com/cobreline/workforce-engine/pkg/models"
)

// CatalogRepository provides read access to the immutable reference
// catalogs: departments, shift patterns, roles, competencies, and courses.
// The engine never writes these tables; they are seeded by migration.
type CatalogRepository interface {
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	ListShiftPatterns(ctx context.Context) ([]*models.ShiftPattern, error)
	ListRoles(ctx context.Context) ([]*models.Role, error)
	ListCompetencies(ctx context.Context) ([]*models.Competency, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
}

type catalogRepository struct {
	store database.Store
}

// NewCatalogRepository creates a CatalogRepository backed by the store.
func NewCatalogRepository(store database.Store) CatalogRepository {
	return &catalogRepository{store: store}
}

var _ CatalogRepository = (*catalogRepository)(nil)

func (r *catalogRepository) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	rows, err := r.store.Query(ctx,
		`SELECT id, name, description FROM departments ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list departments", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, apperrors.NewStoreError("scan department", err)
		}
		departments = append(departments, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate departments", err)
	}
	return departments, nil
}

func (r *catalogRepository) ListShiftPatterns(ctx context.Context) ([]*models.ShiftPattern, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, name, cycle_days, crews, daily_hours, weekly_hours_avg,
		       annual_hours, compliant, fatigue_risk, legal_basis
		FROM shift_patterns
		ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list shift patterns", err)
	}
	defer rows.Close()

	var patterns []*models.ShiftPattern
	for rows.Next() {
		var p models.ShiftPattern
		if err := rows.Scan(&p.ID, &p.Name, &p.CycleDays, &p.Crews, &p.DailyHours,
			&p.WeeklyHoursAvg, &p.AnnualHours, &p.Compliant, &p.FatigueRisk, &p.LegalBasis); err != nil {
			return nil, apperrors.NewStoreError("scan shift pattern", err)
		}
		patterns = append(patterns, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate shift patterns", err)
	}
	return patterns, nil
}

func (r *catalogRepository) ListRoles(ctx context.Context) ([]*models.Role, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, department_id, title, category, shift_type, headcount_per_shift,
		       competency_level, min_education, min_experience, base_salary, certifications
		FROM roles
		ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list roles", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.DepartmentID, &role.Title, &role.Category,
			&role.ShiftType, &role.HeadcountPerShift, &role.CompetencyLevel,
			&role.MinEducation, &role.MinExperience, &role.BaseSalary, &role.Certifications); err != nil {
			return nil, apperrors.NewStoreError("scan role", err)
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate roles", err)
	}
	return roles, nil
}

func (r *catalogRepository) ListCompetencies(ctx context.Context) ([]*models.Competency, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, code, category, name, level_1, level_2, level_3, level_4, level_5
		FROM competencies
		ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list competencies", err)
	}
	defer rows.Close()

	var competencies []*models.Competency
	for rows.Next() {
		var c models.Competency
		if err := rows.Scan(&c.ID, &c.Code, &c.Category, &c.Name,
			&c.Level1, &c.Level2, &c.Level3, &c.Level4, &c.Level5); err != nil {
			return nil, apperrors.NewStoreError("scan competency", err)
		}
		competencies = append(competencies, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate competencies", err)
	}
	return competencies, nil
}

func (r *catalogRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, code, name, target_audience, session_size, sessions, duration_days,
		       method, provider, start_date, end_date, location, estimated_cost,
		       prerequisite, phase
		FROM courses
		ORDER BY phase, id`)
	if err != nil {
		return nil, apperrors.NewStoreError("list courses", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.TargetAudience, &c.SessionSize,
			&c.Sessions, &c.DurationDays, &c.Method, &c.Provider, &c.StartDate,
			&c.EndDate, &c.Location, &c.EstimatedCost, &c.Prerequisite, &c.Phase); err != nil {
			return nil, apperrors.NewStoreError("scan course", err)
		}
		courses = append(courses, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("iterate courses", err)
	}
	return courses, nil
}
