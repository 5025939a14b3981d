package models

import "time"

// Compliance statuses. NO_EVALUADO is the defensive default for a catalog
// rule with no registered evaluation logic.
const (
	ComplianceCumple     = "CUMPLE"
	ComplianceNoCumple   = "NO_CUMPLE"
	ComplianceParcial    = "PARCIAL"
	ComplianceNoEvaluado = "NO_EVALUADO"
)

// ComplianceRule is a static catalog entry for one named regulatory or
// organizational check. Evaluation logic lives in the compliance service;
// the catalog only carries identity and risk metadata.
type ComplianceRule struct {
	ID                   int    `json:"id"`
	Code                 string `json:"code"`
	Description          string `json:"description"`
	Domain               string `json:"domain"`
	LegalSource          string `json:"legal_source"`
	Severity             int    `json:"severity"`              // 1-5
	DetectionProbability int    `json:"detection_probability"` // 1-5
}

// ComplianceResult is one evaluated rule from a check run. The table is
// cleared and repopulated on every check, 1:1 with the rule catalog.
type ComplianceResult struct {
	ID          int       `json:"id"`
	RuleID      int       `json:"rule_id"`
	Status      string    `json:"status"`
	Score       float64   `json:"score"` // 0-100
	Risk        int       `json:"risk"`
	Detail      string    `json:"detail"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// ComplianceSummary aggregates a fresh result set. Computed on read,
// never stored.
type ComplianceSummary struct {
	Total        int     `json:"total"`
	Cumple       int     `json:"cumple"`
	NoCumple     int     `json:"no_cumple"`
	Parcial      int     `json:"parcial"`
	NoEvaluado   int     `json:"no_evaluado"`
	AverageScore float64 `json:"average_score"`
}
