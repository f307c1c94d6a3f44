package assessment

import "context"

// StoreAPI is the read-only contract against the assessment store. All
// operations are idempotent reads; lookups return ErrNotFound for absent
// records rather than synthesizing defaults. Email matching is exact,
// normalization is the caller's job.
type StoreAPI interface {
	ListAssessments(ctx context.Context) ([]RawAssessment, error)
	AssessmentByEmail(ctx context.Context, email string) (RawAssessment, error)
	SelfAssessmentByEmail(ctx context.Context, email string) (SelfAssessment, error)
	ManagerAssessmentByEmail(ctx context.Context, email string) (ManagerAssessment, error)
	ListRequiredSkills(ctx context.Context) ([]RequiredSkills, error)
	RequiredSkillsFor(ctx context.Context, capability, careerLevel string) (RequiredSkills, error)
	ListSoftSkills(ctx context.Context) ([]SoftSkillDefinition, error)
}
