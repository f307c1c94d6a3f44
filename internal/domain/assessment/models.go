package assessment

import "time"

// RawAssessment is the reconciled per-employee skill record produced by the
// upstream sync process. Skill maps use canonical skill names; ratings are
// on a 0-5 scale and gaps are signed (required minus current).
type RawAssessment struct {
	Email         string             `json:"email"`
	Name          string             `json:"name"`
	CareerLevel   string             `json:"careerLevel"`
	Capability    string             `json:"capability"`
	SkillAverages map[string]float64 `json:"skillAverages"`
	SkillGaps     map[string]float64 `json:"skillGaps"`
}

// SelfAssessment holds the raw ratings an employee submitted for themselves.
type SelfAssessment struct {
	Email       string             `json:"email"`
	Skills      map[string]float64 `json:"skills"`
	SubmittedAt time.Time          `json:"submittedAt"`
}

// ManagerAssessment holds the raw ratings a manager submitted for a report.
type ManagerAssessment struct {
	Email        string             `json:"email"`
	ManagerEmail string             `json:"managerEmail"`
	Skills       map[string]float64 `json:"skills"`
	SubmittedAt  time.Time          `json:"submittedAt"`
}

// RequiredSkills is the per-skill baseline (1-6 scale) shared by every
// employee at the same capability and career level. Values are validated
// at the ingestion boundary: non-negative, keys canonical.
type RequiredSkills struct {
	Capability  string             `json:"capability"`
	CareerLevel string             `json:"careerLevel"`
	Skills      map[string]float64 `json:"skills"`
}

// SoftSkillDefinition is a catalog entry used to enrich presentation.
type SoftSkillDefinition struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
