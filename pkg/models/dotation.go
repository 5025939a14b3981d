package models

// Dotation is the derived staffing allocation for a role: how many people
// the role actually needs once crews and the relief factor are applied.
// One row per role, owned exclusively by the staffing recompute.
type Dotation struct {
	ID              int     `json:"id"`
	RoleID          int     `json:"role_id"`
	ShiftPatternID  *int    `json:"shift_pattern_id,omitempty"`
	PersonsPerShift int     `json:"persons_per_shift"`
	Crews           int     `json:"crews"`
	ReliefFactor    float64 `json:"relief_factor"`
	HeadcountTotal  int     `json:"headcount_total"`
}
