package models

// Department is an organizational unit of the commissioning project.
// Seeded once; never written by the engine.
type Department struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
