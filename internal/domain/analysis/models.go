package analysis

import "time"

// SkillSummary is one entry of a top-N list; Value is either a prevalence
// percentage (top skills) or a mean gap (top gaps).
type SkillSummary struct {
	Skill string  `json:"skill"`
	Value float64 `json:"value"`
}

// OrganizationAnalysis summarizes one capability's strongest skills and
// widest gaps.
type OrganizationAnalysis struct {
	Capability    string         `json:"capability"`
	EmployeeCount int            `json:"employeeCount"`
	TopSkills     []SkillSummary `json:"topSkills"`
	TopGaps       []SkillSummary `json:"topGaps"`
	GeneratedAt   time.Time      `json:"generatedAt"`
}

// SkillDistributionEntry counts the employees of one business unit holding
// a skill, flagged by scarcity.
type SkillDistributionEntry struct {
	Skill     string `json:"skill"`
	Category  string `json:"category"`
	UserCount int    `json:"userCount"`
	Status    Status `json:"status"`
}

type BusinessUnitDistribution struct {
	BusinessUnit string                   `json:"businessUnit"`
	Skills       []SkillDistributionEntry `json:"skills"`
}

type GradeCount struct {
	Grade     string `json:"grade"`
	UserCount int    `json:"userCount"`
}

// Distributions groups employees by business unit and skill, and
// separately by grade. Units or grades with no members are omitted, never
// emitted as zero-count placeholders.
type Distributions struct {
	BusinessUnits []BusinessUnitDistribution `json:"businessUnits"`
	Grades        []GradeCount               `json:"grades"`
	GeneratedAt   time.Time                  `json:"generatedAt"`
}

// RankingEntry places one employee on the leaderboard. Ranks are dense
// sequential positions; equal scores order by name ascending.
type RankingEntry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Score float64 `json:"score"`
}

type Rankings struct {
	Entries     []RankingEntry `json:"entries"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// EmployeeSkillRow merges the reconciled figures for one skill with the
// raw self and manager ratings. The reconciled record is authoritative;
// the raw values ride along for comparison and are nil when that source
// never rated the skill.
type EmployeeSkillRow struct {
	Skill         string   `json:"skill"`
	Average       float64  `json:"average"`
	Gap           float64  `json:"gap"`
	Required      float64  `json:"required"`
	SelfRating    *float64 `json:"selfRating,omitempty"`
	ManagerRating *float64 `json:"managerRating,omitempty"`
}

type EmployeeAnalysis struct {
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	CareerLevel string             `json:"careerLevel"`
	Capability  string             `json:"capability"`
	Skills      []EmployeeSkillRow `json:"skills"`
}

// AdminAnalysis is the organization-wide skills matrix.
type AdminAnalysis struct {
	Employees   []EmployeeAnalysis `json:"employees"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
