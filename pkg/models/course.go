package models

import "time"

// SafetyInductionCourseCode is the legally required induction course the
// compliance evaluator checks for (DS132-CAP).
const SafetyInductionCourseCode = "CAP-SEG-001"

// Course is a training-program catalog entry. Phases 1-7 represent the
// sequential training timeline leading to commissioning.
type Course struct {
	ID             int        `json:"id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	TargetAudience string     `json:"target_audience"`
	SessionSize    int        `json:"session_size"`
	Sessions       int        `json:"sessions"`
	DurationDays   int        `json:"duration_days"`
	Method         string     `json:"method"`
	Provider       string     `json:"provider"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Location       string     `json:"location"`
	EstimatedCost  float64    `json:"estimated_cost"`
	Prerequisite   string     `json:"prerequisite,omitempty"`
	Phase          int        `json:"phase"`
}
