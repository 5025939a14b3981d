package models

// Role categories as seeded in the catalog.
const (
	RoleCategoryGestion     = "Gestión"
	RoleCategorySupervision = "Supervisión"
	RoleCategoryProfesional = "Profesional"
	RoleCategoryStaff       = "Staff"
)

// Shift types. Anything that is not a day shift is treated as rotating.
const (
	ShiftTypeDay      = "Día"
	ShiftTypeRotating = "Rotativo"
)

// Competency-level labels carried by roles, mapped to the numeric 1-5
// scale by the gap analyzer.
const (
	LevelExperto      = "Experto"
	LevelAvanzado     = "Avanzado"
	LevelCompetente   = "Competente"
	LevelBasico       = "Básico"
	LevelConocimiento = "Conocimiento"
)

// Role is a position in the commissioning organization. Seeded once and
// read by every downstream recompute.
type Role struct {
	ID                int     `json:"id"`
	DepartmentID      int     `json:"department_id"`
	Title             string  `json:"title"`
	Category          string  `json:"category"`
	ShiftType         string  `json:"shift_type"`
	HeadcountPerShift int     `json:"headcount_per_shift"`
	CompetencyLevel   string  `json:"competency_level"`
	MinEducation      string  `json:"min_education"`
	MinExperience     string  `json:"min_experience"`
	BaseSalary        float64 `json:"base_salary"`
	Certifications    string  `json:"certifications"`
}

// IsDayShift reports whether the role works the administrative day shift.
func (r *Role) IsDayShift() bool {
	return r.ShiftType == ShiftTypeDay
}
