package analysis

// Grade is a position on the fixed career ladder. Strings that are not on
// the ladder map to GradeUnknown, which sorts after every known grade so
// dirty data never interleaves with real ones.
type Grade int

const (
	GradeProfessionalI Grade = iota
	GradeProfessionalII
	GradeProfessionalIII
	GradeProfessionalIV
	GradeManagerI
	GradeManagerII
	GradeManagerIII
	GradeManagerIV
	GradeDirectorI
	GradeDirectorII
	GradeDirectorIII
	GradeDirectorIV
	GradeUnknown
)

var gradeNames = [...]string{
	"Professional I",
	"Professional II",
	"Professional III",
	"Professional IV",
	"Manager I",
	"Manager II",
	"Manager III",
	"Manager IV",
	"Director I",
	"Director II",
	"Director III",
	"Director IV",
}

func ParseGrade(name string) Grade {
	for i, candidate := range gradeNames {
		if candidate == name {
			return Grade(i)
		}
	}
	return GradeUnknown
}

func (g Grade) String() string {
	if g < 0 || int(g) >= len(gradeNames) {
		return "Unknown"
	}
	return gradeNames[g]
}

// CompareGrades orders two grade strings by ladder position. Negative when
// a precedes b, zero when equal, positive otherwise.
func CompareGrades(a, b string) int {
	return int(ParseGrade(a)) - int(ParseGrade(b))
}
