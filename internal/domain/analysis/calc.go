package analysis

import (
	"sort"

	"skillhub/internal/domain/assessment"
)

// maxRating is the top of the 0-5 assessment scale, used when expressing
// a rating as a prevalence percentage.
const maxRating = 5.0

// SkillMetrics are the per-skill figures derived for one employee.
type SkillMetrics struct {
	Average  float64 `json:"average"`
	Gap      float64 `json:"gap"`
	Required float64 `json:"required"`
}

// CalculateSkillMetrics reads one skill out of an assessment against a
// required-skill baseline. Every absent key defaults to zero: a skill that
// was never assessed contributes a harmless zero rather than being
// dropped. Zero average with zero required therefore means "no data", not
// a true low rating.
func CalculateSkillMetrics(skill string, record assessment.RawAssessment, required map[string]float64) SkillMetrics {
	return SkillMetrics{
		Average:  record.SkillAverages[skill],
		Gap:      record.SkillGaps[skill],
		Required: required[skill],
	}
}

// OverallScore is the mean of an employee's skill averages, zero when
// nothing has been rated. It is the scalar used for rankings.
func OverallScore(record assessment.RawAssessment) float64 {
	if len(record.SkillAverages) == 0 {
		return 0
	}
	var sum float64
	for _, rating := range record.SkillAverages {
		sum += rating
	}
	return sum / float64(len(record.SkillAverages))
}

// Status flags a distribution entry for dashboards.
type Status string

const (
	StatusNormal   Status = "NORMAL"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
)

// StatusThresholds parameterize the tri-state classification; they belong
// to the aggregator's configuration, not to this calculator.
type StatusThresholds struct {
	WarningBelow  int
	CriticalBelow int
}

// ClassifyUserCount flags skills held by too few people.
func ClassifyUserCount(userCount int, t StatusThresholds) Status {
	switch {
	case userCount < t.CriticalBelow:
		return StatusCritical
	case userCount < t.WarningBelow:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// skillAccumulator collects per-skill sums across a group of employees.
type skillAccumulator struct {
	sum   float64
	count int
}

func (a skillAccumulator) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// topSkillSummaries turns accumulated per-skill values into the N largest
// entries. Ties break by skill name ascending so equal scores produce a
// deterministic order.
func topSkillSummaries(bySkill map[string]skillAccumulator, limit int, value func(skillAccumulator) float64) []SkillSummary {
	summaries := make([]SkillSummary, 0, len(bySkill))
	for skill, acc := range bySkill {
		summaries = append(summaries, SkillSummary{Skill: skill, Value: value(acc)})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Value != summaries[j].Value {
			return summaries[i].Value > summaries[j].Value
		}
		return summaries[i].Skill < summaries[j].Skill
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}
