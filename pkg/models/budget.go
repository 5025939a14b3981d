package models

// Budget summary categories.
const (
	BudgetCategoryStaffing = "Dotación Personal"
	BudgetCategoryTraining = "Capacitación"
	BudgetCategoryTotal    = "TOTAL OPEX"
)

// BudgetLine is the fully-loaded annual OPEX for one role. One row per
// role, regenerated wholesale by the budget recompute. The burden factor
// and both cost columns are derived and never accepted from input.
type BudgetLine struct {
	ID                  int     `json:"id"`
	RoleID              int     `json:"role_id"`
	Headcount           int     `json:"headcount"`
	BaseSalary          float64 `json:"base_salary"`
	SocialCharges       float64 `json:"social_charges"`
	LegalBonus          float64 `json:"legal_bonus"`
	Vacation            float64 `json:"vacation"`
	Benefits            float64 `json:"benefits"`
	BurdenFactor        float64 `json:"burden_factor"`
	AnnualCostPerPerson float64 `json:"annual_cost_per_person"`
	TotalCost           float64 `json:"total_cost"`
}

// BudgetSummary is a category rollup row. Percentages across the table
// sum to 100 for a given run.
type BudgetSummary struct {
	ID             int     `json:"id"`
	Category       string  `json:"category"`
	Subcategory    string  `json:"subcategory,omitempty"`
	AnnualAmount   float64 `json:"annual_amount"`
	PercentOfTotal float64 `json:"percent_of_total"`
}
