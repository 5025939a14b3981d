package models

// ShiftPattern describes a work-shift cycle and its regulatory envelope.
// Immutable reference data; a pattern with a single crew is an
// administrative (day) pattern, multi-crew patterns provide continuous
// coverage.
type ShiftPattern struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	CycleDays      int     `json:"cycle_days"`
	Crews          int     `json:"crews"`
	DailyHours     float64 `json:"daily_hours"`
	WeeklyHoursAvg float64 `json:"weekly_hours_avg"`
	AnnualHours    float64 `json:"annual_hours"`
	Compliant      bool    `json:"compliant"`
	FatigueRisk    string  `json:"fatigue_risk"`
	LegalBasis     string  `json:"legal_basis"`
}

// IsRotating reports whether the pattern requires multiple crews for
// continuous coverage.
func (p *ShiftPattern) IsRotating() bool {
	return p.Crews > 1
}
