package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads the assessment document tables. The sync process that owns
// these records writes them elsewhere; this side never mutates.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListAssessments(ctx context.Context) ([]RawAssessment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT email, name, career_level, capability, skill_averages, skill_gaps
    FROM assessments
    ORDER BY email
  `)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []RawAssessment
	for rows.Next() {
		record, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, record)
	}
	return assessments, rows.Err()
}

func (s *Store) AssessmentByEmail(ctx context.Context, email string) (RawAssessment, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT email, name, career_level, capability, skill_averages, skill_gaps
    FROM assessments
    WHERE email = $1
  `, email)
	record, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return RawAssessment{}, ErrNotFound
	}
	return record, err
}

func (s *Store) SelfAssessmentByEmail(ctx context.Context, email string) (SelfAssessment, error) {
	var record SelfAssessment
	var skillsJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT email, skills, submitted_at
    FROM self_assessments
    WHERE email = $1
  `, email).Scan(&record.Email, &skillsJSON, &record.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return SelfAssessment{}, ErrNotFound
	}
	if err != nil {
		return SelfAssessment{}, fmt.Errorf("self assessment by email: %w", err)
	}
	record.Skills = unmarshalSkillMap(skillsJSON)
	return record, nil
}

func (s *Store) ManagerAssessmentByEmail(ctx context.Context, email string) (ManagerAssessment, error) {
	var record ManagerAssessment
	var skillsJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT email, manager_email, skills, submitted_at
    FROM manager_assessments
    WHERE email = $1
  `, email).Scan(&record.Email, &record.ManagerEmail, &skillsJSON, &record.SubmittedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ManagerAssessment{}, ErrNotFound
	}
	if err != nil {
		return ManagerAssessment{}, fmt.Errorf("manager assessment by email: %w", err)
	}
	record.Skills = unmarshalSkillMap(skillsJSON)
	return record, nil
}

func (s *Store) ListRequiredSkills(ctx context.Context) ([]RequiredSkills, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT capability, career_level, skills
    FROM required_skills
    ORDER BY capability, career_level
  `)
	if err != nil {
		return nil, fmt.Errorf("list required skills: %w", err)
	}
	defer rows.Close()

	var baselines []RequiredSkills
	for rows.Next() {
		var baseline RequiredSkills
		var skillsJSON []byte
		if err := rows.Scan(&baseline.Capability, &baseline.CareerLevel, &skillsJSON); err != nil {
			return nil, err
		}
		baseline.Skills = unmarshalSkillMap(skillsJSON)
		baselines = append(baselines, baseline)
	}
	return baselines, rows.Err()
}

func (s *Store) RequiredSkillsFor(ctx context.Context, capability, careerLevel string) (RequiredSkills, error) {
	var baseline RequiredSkills
	var skillsJSON []byte
	err := s.DB.QueryRow(ctx, `
    SELECT capability, career_level, skills
    FROM required_skills
    WHERE capability = $1 AND career_level = $2
  `, capability, careerLevel).Scan(&baseline.Capability, &baseline.CareerLevel, &skillsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return RequiredSkills{}, ErrNotFound
	}
	if err != nil {
		return RequiredSkills{}, fmt.Errorf("required skills for %s/%s: %w", capability, careerLevel, err)
	}
	baseline.Skills = unmarshalSkillMap(skillsJSON)
	return baseline, nil
}

func (s *Store) ListSoftSkills(ctx context.Context) ([]SoftSkillDefinition, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT title, category, description
    FROM soft_skills
    ORDER BY category, title
  `)
	if err != nil {
		return nil, fmt.Errorf("list soft skills: %w", err)
	}
	defer rows.Close()

	var definitions []SoftSkillDefinition
	for rows.Next() {
		var definition SoftSkillDefinition
		if err := rows.Scan(&definition.Title, &definition.Category, &definition.Description); err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)
	}
	return definitions, rows.Err()
}

func scanAssessment(row pgx.Row) (RawAssessment, error) {
	var record RawAssessment
	var averagesJSON, gapsJSON []byte
	if err := row.Scan(&record.Email, &record.Name, &record.CareerLevel, &record.Capability, &averagesJSON, &gapsJSON); err != nil {
		return RawAssessment{}, err
	}
	record.SkillAverages = unmarshalSkillMap(averagesJSON)
	record.SkillGaps = unmarshalSkillMap(gapsJSON)
	return record, nil
}

// A null or malformed skill document reads as an empty map; a skill
// missing from the map already means "no data" downstream, so a missing
// map degrades the same way.
func unmarshalSkillMap(raw []byte) map[string]float64 {
	if len(raw) == 0 {
		return map[string]float64{}
	}
	var skills map[string]float64
	if err := json.Unmarshal(raw, &skills); err != nil || skills == nil {
		return map[string]float64{}
	}
	return skills
}
