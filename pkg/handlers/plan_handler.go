package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cobreline/workforce-engine/pkg/services"
)

// GenerateResponse is returned by every generate/check command.
type GenerateResponse struct {
	Message string  `json:"message"`
	Count   int     `json:"count,omitempty"`
	Total   float64 `json:"total,omitempty"`
}

// ResetRequest selects a single derived table to clear; an empty body or
// empty table resets the whole plan.
type ResetRequest struct {
	Table string `json:"table,omitempty"`
}

// PlanHandler exposes the recompute commands and the read side of the
// planning dataset.
type PlanHandler struct {
	staffing   services.StaffingService
	gaps       services.GapAnalysisService
	budget     services.BudgetService
	compliance services.ComplianceService
	reset      services.ResetService
	logger     *zap.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(
	staffing services.StaffingService,
	gaps services.GapAnalysisService,
	budget services.BudgetService,
	compliance services.ComplianceService,
	reset services.ResetService,
	logger *zap.Logger,
) *PlanHandler {
	return &PlanHandler{
		staffing:   staffing,
		gaps:       gaps,
		budget:     budget,
		compliance: compliance,
		reset:      reset,
		logger:     logger,
	}
}

// RegisterRoutes registers the plan handler's routes on the given mux.
func (h *PlanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/plan/dotacion/generate", h.GenerateStaffing)
	mux.HandleFunc("POST /api/plan/brechas/generate", h.GenerateGaps)
	mux.HandleFunc("POST /api/plan/presupuesto/generate", h.GenerateBudget)
	mux.HandleFunc("POST /api/plan/cumplimiento/check", h.CheckCompliance)
	mux.HandleFunc("POST /api/plan/reset", h.Reset)

	mux.HandleFunc("GET /api/plan/dotacion", h.ListStaffing)
	mux.HandleFunc("GET /api/plan/brechas", h.ListGaps)
	mux.HandleFunc("GET /api/plan/presupuesto", h.GetBudget)
	mux.HandleFunc("GET /api/plan/cumplimiento", h.ListCompliance)
	mux.HandleFunc("GET /api/plan/cumplimiento/resumen", h.ComplianceSummary)
}

// GenerateStaffing handles POST /api/plan/dotacion/generate.
func (h *PlanHandler) GenerateStaffing(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffing.Recompute(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, GenerateResponse{
		Message: "dotación generada",
		Count:   result.UpdatedCount,
	})
}

// GenerateGaps handles POST /api/plan/brechas/generate.
func (h *PlanHandler) GenerateGaps(w http.ResponseWriter, r *http.Request) {
	result, err := h.gaps.Recompute(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, GenerateResponse{
		Message: "matriz de brechas generada",
		Count:   result.EntriesCreated,
	})
}

// GenerateBudget handles POST /api/plan/presupuesto/generate.
func (h *PlanHandler) GenerateBudget(w http.ResponseWriter, r *http.Request) {
	result, err := h.budget.Recompute(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, GenerateResponse{
		Message: "presupuesto generado",
		Total:   result.TotalCost,
	})
}

// CheckCompliance handles POST /api/plan/cumplimiento/check.
func (h *PlanHandler) CheckCompliance(w http.ResponseWriter, r *http.Request) {
	result, err := h.compliance.Check(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, GenerateResponse{
		Message: "cumplimiento evaluado",
		Count:   len(result.Results),
	})
}

// Reset handles POST /api/plan/reset.
func (h *PlanHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	var err error
	if req.Table == "" {
		err = h.reset.ResetAll(r.Context())
	} else {
		err = h.reset.ResetTable(r.Context(), req.Table)
	}
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, GenerateResponse{Message: "restablecido"})
}

// ListStaffing handles GET /api/plan/dotacion.
func (h *PlanHandler) ListStaffing(w http.ResponseWriter, r *http.Request) {
	dotations, err := h.staffing.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, dotations)
}

// ListGaps handles GET /api/plan/brechas.
func (h *PlanHandler) ListGaps(w http.ResponseWriter, r *http.Request) {
	entries, err := h.gaps.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, entries)
}

// GetBudget handles GET /api/plan/presupuesto.
func (h *PlanHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	overview, err := h.budget.Overview(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, overview)
}

// ListCompliance handles GET /api/plan/cumplimiento.
func (h *PlanHandler) ListCompliance(w http.ResponseWriter, r *http.Request) {
	results, err := h.compliance.Results(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, results)
}

// ComplianceSummary handles GET /api/plan/cumplimiento/resumen.
func (h *PlanHandler) ComplianceSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.compliance.Summary(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, summary)
}
