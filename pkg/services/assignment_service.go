package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/apperrors"
	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/repositories"
)

// AssignmentService manages training assignments, the one entity with
// user-driven state transitions. Assignments are never rebuilt by a
// recompute.
type AssignmentService interface {
	List(ctx context.Context) ([]*models.TrainingAssignment, error)

	// Assign links a role to a course with a quantity of people.
	Assign(ctx context.Context, roleID, courseID, quantity int, notes string) (*models.TrainingAssignment, error)

	// UpdateStatus advances an assignment through
	// PENDIENTE -> EN_CURSO -> COMPLETADO. Moving backwards is rejected.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.TrainingAssignment, error)

	// AutoAssign matches every course's target audience against role
	// titles and categories and creates pending assignments for the
	// matches, skipping pairs that already have one. Returns the number
	// of assignments created.
	AutoAssign(ctx context.Context) (int, error)
}

type assignmentService struct {
	catalog     repositories.CatalogRepository
	dotations   repositories.DotationRepository
	assignments repositories.AssignmentRepository
	audit       AuditService
	logger      *zap.Logger
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	catalog repositories.CatalogRepository,
	dotations repositories.DotationRepository,
	assignments repositories.AssignmentRepository,
	audit AuditService,
	logger *zap.Logger,
) AssignmentService {
	return &assignmentService{
		catalog:     catalog,
		dotations:   dotations,
		assignments: assignments,
		audit:       audit,
		logger:      logger.Named("assignment-service"),
	}
}

var _ AssignmentService = (*assignmentService)(nil)

func (s *assignmentService) List(ctx context.Context) ([]*models.TrainingAssignment, error) {
	return s.assignments.List(ctx)
}

func (s *assignmentService) Assign(ctx context.Context, roleID, courseID, quantity int, notes string) (*models.TrainingAssignment, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidationError("quantity", "must be at least 1")
	}

	role, err := s.findRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	existing, err := s.assignments.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.RoleID == roleID && a.CourseID == courseID {
			return nil, fmt.Errorf("role %d already assigned to course %d: %w",
				roleID, courseID, apperrors.ErrConflict)
		}
	}

	assignment := &models.TrainingAssignment{
		RoleID:     role.ID,
		CourseID:   course.ID,
		Quantity:   quantity,
		Status:     models.AssignmentStatusPendiente,
		AssignedAt: time.Now(),
		Notes:      notes,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("cargo %q asignado al curso %s (%d personas)", role.Title, course.Code, quantity)
	if err := s.audit.Append(ctx, models.AuditModuleAsignaciones, models.AuditActionAssign, detail); err != nil {
		return nil, err
	}
	return assignment, nil
}

// statusRank orders the assignment lifecycle for transition checks.
var statusRank = map[string]int{
	models.AssignmentStatusPendiente:  0,
	models.AssignmentStatusEnCurso:    1,
	models.AssignmentStatusCompletado: 2,
}

func (s *assignmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.TrainingAssignment, error) {
	if !models.ValidAssignmentStatus(status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if statusRank[status] < statusRank[assignment.Status] {
		return nil, apperrors.NewValidationError("status",
			fmt.Sprintf("cannot move from %s back to %s", assignment.Status, status))
	}

	var completedAt *time.Time
	if status == models.AssignmentStatusCompletado {
		now := time.Now()
		completedAt = &now
	}
	if err := s.assignments.UpdateStatus(ctx, id, status, completedAt); err != nil {
		return nil, err
	}
	assignment.Status = status
	assignment.CompletedAt = completedAt

	detail := fmt.Sprintf("asignación %s actualizada a %s", id, status)
	if err := s.audit.Append(ctx, models.AuditModuleAsignaciones, models.AuditActionUpdate, detail); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) AutoAssign(ctx context.Context) (int, error) {
	roles, err := s.catalog.ListRoles(ctx)
	if err != nil {
		return 0, err
	}
	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return 0, err
	}
	dotations, err := s.dotations.List(ctx)
	if err != nil {
		return 0, err
	}
	existing, err := s.assignments.List(ctx)
	if err != nil {
		return 0, err
	}

	headcountByRole := make(map[int]int, len(dotations))
	for _, d := range dotations {
		headcountByRole[d.RoleID] = d.HeadcountTotal
	}
	assigned := make(map[[2]int]bool, len(existing))
	for _, a := range existing {
		assigned[[2]int{a.RoleID, a.CourseID}] = true
	}

	created := 0
	for _, course := range courses {
		for _, role := range roles {
			if assigned[[2]int{role.ID, course.ID}] {
				continue
			}
			if !audienceMatches(course.TargetAudience, role) {
				continue
			}
			quantity := headcountByRole[role.ID]
			if quantity == 0 {
				quantity = 1
			}
			assignment := &models.TrainingAssignment{
				RoleID:     role.ID,
				CourseID:   course.ID,
				Quantity:   quantity,
				Status:     models.AssignmentStatusPendiente,
				AssignedAt: time.Now(),
				Notes:      "asignación automática por audiencia objetivo",
			}
			if err := s.assignments.Create(ctx, assignment); err != nil {
				return created, err
			}
			assigned[[2]int{role.ID, course.ID}] = true
			created++
		}
	}

	detail := fmt.Sprintf("asignación automática creó %d asignaciones", created)
	if err := s.audit.Append(ctx, models.AuditModuleAsignaciones, models.AuditActionAssign, detail); err != nil {
		return created, err
	}

	s.logger.Info("Auto-assignment complete", zap.Int("created", created))
	return created, nil
}

// audienceMatches decides whether a course's free-text target audience
// covers a role. "todos" matches everything; otherwise the audience must
// mention the role's category or a significant word of its title.
func audienceMatches(audience string, role *models.Role) bool {
	aud := normalizeText(audience)
	if aud == "" {
		return false
	}
	if strings.Contains(aud, "todos") || strings.Contains(aud, "todo el personal") {
		return true
	}
	if strings.Contains(aud, normalizeText(role.Category)) {
		return true
	}
	for _, word := range strings.Fields(normalizeText(role.Title)) {
		if len(word) > 3 && strings.Contains(aud, word) {
			return true
		}
	}
	return false
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

func normalizeText(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

func (s *assignmentService) findRole(ctx context.Context, roleID int) (*models.Role, error) {
	roles, err := s.catalog.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.ID == roleID {
			return r, nil
		}
	}
	return nil, apperrors.NewValidationError("role_id", fmt.Sprintf("unknown role %d", roleID))
}

func (s *assignmentService) findCourse(ctx context.Context, courseID int) (*models.Course, error) {
	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if c.ID == courseID {
			return c, nil
		}
	}
	return nil, apperrors.NewValidationError("course_id", fmt.Sprintf("unknown course %d", courseID))
}
