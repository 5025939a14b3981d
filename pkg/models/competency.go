package models

// Competency categories. A Seguridad competency raises the required level
// for every role that must hold it.
const (
	CompetencyCategorySeguridad   = "Seguridad"
	CompetencyCategoryTecnica     = "Técnica"
	CompetencyCategorySistemas    = "Sistemas"
	CompetencyCategoryOperacional = "Operacional"
	CompetencyCategoryConductual  = "Conductual"
)

// Competency is a catalog entry with five described proficiency levels.
// Static reference data.
type Competency struct {
	ID       int    `json:"id"`
	Code     string `json:"code"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Level1   string `json:"level_1"`
	Level2   string `json:"level_2"`
	Level3   string `json:"level_3"`
	Level4   string `json:"level_4"`
	Level5   string `json:"level_5"`
}
