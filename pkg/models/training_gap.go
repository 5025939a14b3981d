package models

// Gap severity tiers. The tier drives hours, method, and priority.
const (
	GapSeverityCritica       = "Crítica"
	GapSeveritySignificativa = "Significativa"
	GapSeverityMenor         = "Menor"
)

// Training priorities.
const (
	GapPriorityPreIngreso       = "Pre-ingreso"
	GapPriorityPreCommissioning = "Pre-commissioning"
)

// TrainingGapEntry is one cell of the derived role x competency gap
// matrix. Rows exist only where the gap is positive; the whole table is
// wiped and regenerated on every recompute.
type TrainingGapEntry struct {
	ID             int    `json:"id"`
	RoleID         int    `json:"role_id"`
	CompetencyID   int    `json:"competency_id"`
	RequiredLevel  int    `json:"required_level"`
	CurrentLevel   int    `json:"current_level"`
	Gap            int    `json:"gap"`
	Severity       string `json:"severity"`
	Method         string `json:"method"`
	EstimatedHours int    `json:"estimated_hours"`
	Priority       string `json:"priority"`
}
