package analysis

import (
	"testing"

	"skillhub/internal/domain/assessment"
)

func TestCalculateSkillMetrics(t *testing.T) {
	record := assessment.RawAssessment{
		Email:         "a@x.com",
		SkillAverages: map[string]float64{"Test Planning": 3.2},
		SkillGaps:     map[string]float64{"Test Planning": 0.8},
	}
	required := map[string]float64{"Test Planning": 4}

	m := CalculateSkillMetrics("Test Planning", record, required)
	if m.Average != 3.2 || m.Gap != 0.8 || m.Required != 4 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
}

func TestCalculateSkillMetricsDefaultsToZero(t *testing.T) {
	record := assessment.RawAssessment{
		SkillAverages: map[string]float64{"SQL": 4},
		SkillGaps:     map[string]float64{"SQL": 0.5},
	}

	m := CalculateSkillMetrics("Kubernetes", record, map[string]float64{"SQL": 3})
	if m.Average != 0 || m.Gap != 0 || m.Required != 0 {
		t.Fatalf("expected zero defaults for absent skill, got %+v", m)
	}

	// Nil maps behave the same as maps without the key.
	m = CalculateSkillMetrics("Kubernetes", assessment.RawAssessment{}, nil)
	if m.Average != 0 || m.Gap != 0 || m.Required != 0 {
		t.Fatalf("expected zero defaults for nil maps, got %+v", m)
	}
}

func TestOverallScore(t *testing.T) {
	record := assessment.RawAssessment{
		SkillAverages: map[string]float64{"A": 4, "B": 2},
	}
	if got := OverallScore(record); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := OverallScore(assessment.RawAssessment{}); got != 0 {
		t.Fatalf("expected 0 for unrated employee, got %v", got)
	}
}

func TestClassifyUserCount(t *testing.T) {
	thresholds := StatusThresholds{WarningBelow: 5, CriticalBelow: 2}
	cases := []struct {
		count int
		want  Status
	}{
		{0, StatusCritical},
		{1, StatusCritical},
		{2, StatusWarning},
		{4, StatusWarning},
		{5, StatusNormal},
		{50, StatusNormal},
	}
	for _, tc := range cases {
		if got := ClassifyUserCount(tc.count, thresholds); got != tc.want {
			t.Fatalf("count %d: expected %s, got %s", tc.count, tc.want, got)
		}
	}
}

func TestTopSkillSummariesTieBreak(t *testing.T) {
	bySkill := map[string]skillAccumulator{
		"Zeta":  {sum: 8, count: 2},
		"Alpha": {sum: 8, count: 2},
		"Beta":  {sum: 2, count: 2},
	}
	got := topSkillSummaries(bySkill, 2, func(acc skillAccumulator) float64 { return acc.mean() })
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Skill != "Alpha" || got[1].Skill != "Zeta" {
		t.Fatalf("equal scores must order by skill name: %+v", got)
	}
}
