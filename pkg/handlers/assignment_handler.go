package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/services"
)

// CreateAssignmentRequest for POST /api/plan/asignaciones.
type CreateAssignmentRequest struct {
	RoleID   int    `json:"role_id"`
	CourseID int    `json:"course_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// UpdateAssignmentStatusRequest for PUT /api/plan/asignaciones/{id}/estado.
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status"`
}

// AutoAssignResponse for POST /api/plan/asignaciones/auto.
type AutoAssignResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
}

// AssignmentHandler handles training-assignment HTTP requests.
type AssignmentHandler struct {
	assignments services.AssignmentService
	logger      *zap.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignments services.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, logger: logger}
}

// RegisterRoutes registers the assignment handler's routes on the given mux.
func (h *AssignmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/plan/asignaciones", h.List)
	mux.HandleFunc("POST /api/plan/asignaciones", h.Create)
	mux.HandleFunc("POST /api/plan/asignaciones/auto", h.AutoAssign)
	mux.HandleFunc("PUT /api/plan/asignaciones/{id}/estado", h.UpdateStatus)
}

// List handles GET /api/plan/asignaciones.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignments.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, assignments)
}

// Create handles POST /api/plan/asignaciones.
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	assignment, err := h.assignments.Assign(r.Context(), req.RoleID, req.CourseID, req.Quantity, req.Notes)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusCreated, assignment)
}

// AutoAssign handles POST /api/plan/asignaciones/auto.
func (h *AssignmentHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	created, err := h.assignments.AutoAssign(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, AutoAssignResponse{
		Message: "asignación automática completada",
		Created: created,
	})
}

// UpdateStatus handles PUT /api/plan/asignaciones/{id}/estado.
func (h *AssignmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid assignment id")
		return
	}

	var req UpdateAssignmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	assignment, err := h.assignments.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, assignment)
}
