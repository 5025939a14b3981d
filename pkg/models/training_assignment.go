package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment statuses. Transitions run PENDIENTE -> EN_CURSO -> COMPLETADO.
const (
	AssignmentStatusPendiente  = "PENDIENTE"
	AssignmentStatusEnCurso    = "EN_CURSO"
	AssignmentStatusCompletado = "COMPLETADO"
)

// TrainingAssignment links a role to a course with a quantity of people.
// This is the one entity with user-driven state transitions; it is never
// rebuilt by a recompute.
type TrainingAssignment struct {
	ID          uuid.UUID  `json:"id"`
	RoleID      int        `json:"role_id"`
	CourseID    int        `json:"course_id"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ValidAssignmentStatus reports whether s is one of the known statuses.
func ValidAssignmentStatus(s string) bool {
	switch s {
	case AssignmentStatusPendiente, AssignmentStatusEnCurso, AssignmentStatusCompletado:
		return true
	}
	return false
}
