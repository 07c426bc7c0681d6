package entity

type Category string

const (
	CategoryExperience           Category = "years-of-experience"
	CategoryEducation            Category = "education-level"
	CategoryWorkAuthorization    Category = "work-authorization"
	CategorySponsorship          Category = "sponsorship-required"
	CategoryRelocation           Category = "relocation-willingness"
	CategoryNoticePeriod         Category = "notice-period"
	CategoryCurrentCompensation  Category = "current-compensation"
	CategoryExpectedCompensation Category = "expected-compensation"
	CategoryPriorEmployment      Category = "prior-employment"
	CategoryReferenceConsent     Category = "reference-consent"
	CategoryCertifications       Category = "certifications"
)

// Categories lists every category in matching priority order.
var Categories = []Category{
	CategoryExperience,
	CategoryEducation,
	CategoryWorkAuthorization,
	CategorySponsorship,
	CategoryRelocation,
	CategoryNoticePeriod,
	CategoryCurrentCompensation,
	CategoryExpectedCompensation,
	CategoryPriorEmployment,
	CategoryReferenceConsent,
	CategoryCertifications,
}

func (c Category) String() string {
	return string(c)
}

// DefaultChoices are tried on choice controls whose label has no policy answer.
var DefaultChoices = []string{"Yes", "True"}

// AnswerPolicy maps question categories to canonical answers. The zero value
// answers nothing. A policy is immutable once built and safe to share.
type AnswerPolicy struct {
	answers        map[Category]string
	defaultChoices []string
}

// NewAnswerPolicy copies answers and choices into a new policy. A nil choices
// slice selects DefaultChoices; an empty non-nil slice disables the fallback.
func NewAnswerPolicy(answers map[Category]string, choices []string) AnswerPolicy {
	copied := make(map[Category]string, len(answers))
	for k, v := range answers {
		copied[k] = v
	}
	if choices == nil {
		choices = DefaultChoices
	}
	return AnswerPolicy{
		answers:        copied,
		defaultChoices: append([]string(nil), choices...),
	}
}

// Answer returns the configured value for c. Empty values count as unset.
func (p AnswerPolicy) Answer(c Category) (string, bool) {
	v, ok := p.answers[c]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p AnswerPolicy) DefaultChoices() []string {
	return append([]string(nil), p.defaultChoices...)
}

// Contact holds applicant details filled outside the question matcher.
type Contact struct {
	Phone      string
	Email      string
	ResumePath string
}
