package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"skillhub/internal/domain/assessment"
)

// CapabilityAll is the pseudo-capability for organization-wide analysis.
const CapabilityAll = "All"

// defaultSkillCategory is used for skills absent from the soft-skill
// catalog.
const defaultSkillCategory = "General"

func (s *Service) computeAdminAnalysis(ctx context.Context) (AdminAnalysis, error) {
	records, err := s.store.ListAssessments(ctx)
	if err != nil {
		return AdminAnalysis{}, fmt.Errorf("admin analysis: %w", err)
	}
	baselines, err := s.requiredSkillsIndex(ctx)
	if err != nil {
		return AdminAnalysis{}, fmt.Errorf("admin analysis: %w", err)
	}

	employees := make([]EmployeeAnalysis, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.FetchConcurrency)
	for i, record := range records {
		g.Go(func() error {
			required := baselines[baselineKey(record.Capability, record.CareerLevel)]
			row, err := s.mergeEmployee(gctx, record, required)
			if err != nil {
				return err
			}
			employees[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AdminAnalysis{}, fmt.Errorf("admin analysis: %w", err)
	}

	sort.Slice(employees, func(i, j int) bool { return employees[i].Email < employees[j].Email })
	return AdminAnalysis{Employees: employees, GeneratedAt: s.now().UTC()}, nil
}

func (s *Service) computeEmployeeAnalysis(ctx context.Context, email string) (EmployeeAnalysis, error) {
	record, err := s.store.AssessmentByEmail(ctx, email)
	if errors.Is(err, assessment.ErrNotFound) {
		return EmployeeAnalysis{}, fmt.Errorf("employee %s: %w", email, assessment.ErrNotFound)
	}
	if err != nil {
		return EmployeeAnalysis{}, fmt.Errorf("employee analysis: %w", err)
	}

	required, err := s.store.RequiredSkillsFor(ctx, record.Capability, record.CareerLevel)
	if err != nil && !errors.Is(err, assessment.ErrNotFound) {
		return EmployeeAnalysis{}, fmt.Errorf("employee analysis: %w", err)
	}
	// A missing baseline means "not configured"; required levels default
	// to zero.
	return s.mergeEmployee(ctx, record, required.Skills)
}

// mergeEmployee builds the per-skill rows for one reconciled record,
// pulling the raw self and manager ratings alongside. The two raw sources
// are optional: absence or an upstream failure only drops the comparison
// columns.
func (s *Service) mergeEmployee(ctx context.Context, record assessment.RawAssessment, required map[string]float64) (EmployeeAnalysis, error) {
	var self assessment.SelfAssessment
	var manager assessment.ManagerAssessment

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.store.SelfAssessmentByEmail(gctx, record.Email)
		if err != nil && !errors.Is(err, assessment.ErrNotFound) {
			s.log.Warn("self assessment unavailable", "email", record.Email, "err", err)
			return nil
		}
		self = found
		return nil
	})
	g.Go(func() error {
		found, err := s.store.ManagerAssessmentByEmail(gctx, record.Email)
		if err != nil && !errors.Is(err, assessment.ErrNotFound) {
			s.log.Warn("manager assessment unavailable", "email", record.Email, "err", err)
			return nil
		}
		manager = found
		return nil
	})
	_ = g.Wait()

	skills := skillUnion(record.SkillAverages, record.SkillGaps, required)
	rows := make([]EmployeeSkillRow, 0, len(skills))
	for _, skill := range skills {
		m := CalculateSkillMetrics(skill, record, required)
		row := EmployeeSkillRow{
			Skill:    skill,
			Average:  m.Average,
			Gap:      m.Gap,
			Required: m.Required,
		}
		if rating, ok := self.Skills[skill]; ok {
			row.SelfRating = &rating
		}
		if rating, ok := manager.Skills[skill]; ok {
			row.ManagerRating = &rating
		}
		rows = append(rows, row)
	}

	return EmployeeAnalysis{
		Email:       record.Email,
		Name:        record.Name,
		CareerLevel: record.CareerLevel,
		Capability:  record.Capability,
		Skills:      rows,
	}, nil
}

func (s *Service) computeDistributions(ctx context.Context) (Distributions, error) {
	records, err := s.store.ListAssessments(ctx)
	if err != nil {
		return Distributions{}, fmt.Errorf("distributions: %w", err)
	}
	categories, err := s.skillCategories(ctx)
	if err != nil {
		return Distributions{}, fmt.Errorf("distributions: %w", err)
	}

	// A rating above zero counts as holding the skill; zero means "no
	// data" under the zero-default policy.
	unitCounts := map[string]map[string]int{}
	gradeCounts := map[string]int{}
	for _, record := range records {
		unit := record.Capability
		if unit == "" {
			continue
		}
		if unitCounts[unit] == nil {
			unitCounts[unit] = map[string]int{}
		}
		for skill, rating := range record.SkillAverages {
			if rating > 0 {
				unitCounts[unit][skill]++
			}
		}
		if record.CareerLevel != "" {
			gradeCounts[record.CareerLevel]++
		}
	}

	units := make([]BusinessUnitDistribution, 0, len(unitCounts))
	for unit, counts := range unitCounts {
		entries := make([]SkillDistributionEntry, 0, len(counts))
		for skill, count := range counts {
			category, ok := categories[skill]
			if !ok {
				category = defaultSkillCategory
			}
			entries = append(entries, SkillDistributionEntry{
				Skill:     skill,
				Category:  category,
				UserCount: count,
				Status:    ClassifyUserCount(count, s.cfg.Thresholds),
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Category != entries[j].Category {
				return entries[i].Category < entries[j].Category
			}
			return entries[i].Skill < entries[j].Skill
		})
		units = append(units, BusinessUnitDistribution{BusinessUnit: unit, Skills: entries})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].BusinessUnit < units[j].BusinessUnit })

	grades := make([]GradeCount, 0, len(gradeCounts))
	for grade, count := range gradeCounts {
		grades = append(grades, GradeCount{Grade: grade, UserCount: count})
	}
	sort.Slice(grades, func(i, j int) bool {
		if c := CompareGrades(grades[i].Grade, grades[j].Grade); c != 0 {
			return c < 0
		}
		return grades[i].Grade < grades[j].Grade
	})

	return Distributions{BusinessUnits: units, Grades: grades, GeneratedAt: s.now().UTC()}, nil
}

func (s *Service) computeRankings(ctx context.Context) (Rankings, error) {
	records, err := s.store.ListAssessments(ctx)
	if err != nil {
		return Rankings{}, fmt.Errorf("rankings: %w", err)
	}

	entries := make([]RankingEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, RankingEntry{
			Name:  record.Name,
			Email: record.Email,
			Score: OverallScore(record),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Email < entries[j].Email
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return Rankings{Entries: entries, GeneratedAt: s.now().UTC()}, nil
}

func (s *Service) computeOrganizationAnalysis(ctx context.Context, capability string) (OrganizationAnalysis, error) {
	records, err := s.store.ListAssessments(ctx)
	if err != nil {
		return OrganizationAnalysis{}, fmt.Errorf("organization analysis: %w", err)
	}

	var matched []assessment.RawAssessment
	if capability == CapabilityAll {
		matched = records
	} else {
		for _, record := range records {
			if record.Capability == capability {
				matched = append(matched, record)
			}
		}
	}
	if len(matched) == 0 && capability != CapabilityAll {
		// No phantom summaries for capabilities that have no employees.
		return OrganizationAnalysis{}, fmt.Errorf("capability %s: %w", capability, assessment.ErrNotFound)
	}

	averages := map[string]skillAccumulator{}
	gaps := map[string]skillAccumulator{}
	for _, record := range matched {
		for skill, rating := range record.SkillAverages {
			acc := averages[skill]
			acc.sum += rating
			acc.count++
			averages[skill] = acc
		}
		for skill, gap := range record.SkillGaps {
			acc := gaps[skill]
			acc.sum += gap
			acc.count++
			gaps[skill] = acc
		}
	}

	topSkills := topSkillSummaries(averages, s.cfg.TopSkillsLimit, func(acc skillAccumulator) float64 {
		return acc.mean() / maxRating * 100
	})
	topGaps := topSkillSummaries(gaps, s.cfg.TopSkillsLimit, func(acc skillAccumulator) float64 {
		return acc.mean()
	})

	return OrganizationAnalysis{
		Capability:    capability,
		EmployeeCount: len(matched),
		TopSkills:     topSkills,
		TopGaps:       topGaps,
		GeneratedAt:   s.now().UTC(),
	}, nil
}

func (s *Service) requiredSkillsIndex(ctx context.Context) (map[string]map[string]float64, error) {
	baselines, err := s.store.ListRequiredSkills(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]map[string]float64, len(baselines))
	for _, baseline := range baselines {
		index[baselineKey(baseline.Capability, baseline.CareerLevel)] = baseline.Skills
	}
	return index, nil
}

func (s *Service) skillCategories(ctx context.Context) (map[string]string, error) {
	catalog, err := s.store.ListSoftSkills(ctx)
	if err != nil {
		return nil, err
	}
	categories := make(map[string]string, len(catalog))
	for _, definition := range catalog {
		categories[definition.Title] = definition.Category
	}
	return categories, nil
}

func baselineKey(capability, careerLevel string) string {
	return capability + "\x00" + careerLevel
}

func skillUnion(maps ...map[string]float64) []string {
	seen := map[string]struct{}{}
	for _, m := range maps {
		for skill := range m {
			seen[skill] = struct{}{}
		}
	}
	skills := make([]string, 0, len(seen))
	for skill := range seen {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}
