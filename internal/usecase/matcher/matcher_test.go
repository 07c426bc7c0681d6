package matcher

import (
	"testing"

	"easyapply/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() entity.AnswerPolicy {
	return entity.NewAnswerPolicy(map[entity.Category]string{
		entity.CategoryExperience:           "5",
		entity.CategoryEducation:            "Bachelor's Degree",
		entity.CategoryWorkAuthorization:    "Yes",
		entity.CategorySponsorship:          "No",
		entity.CategoryRelocation:           "Yes",
		entity.CategoryNoticePeriod:         "15",
		entity.CategoryCurrentCompensation:  "1000000",
		entity.CategoryExpectedCompensation: "1500000",
		entity.CategoryPriorEmployment:      "No",
		entity.CategoryReferenceConsent:     "Yes",
		entity.CategoryCertifications:       "None",
	}, nil)
}

func TestMatch_Categories(t *testing.T) {
	m := New(testPolicy())

	tests := []struct {
		label    string
		category entity.Category
		value    string
	}{
		{"How many years of work experience do you have with Go?", entity.CategoryExperience, "5"},
		{"What is your highest level of education?", entity.CategoryEducation, "Bachelor's Degree"},
		{"Are you legally authorized to work in the country?", entity.CategoryWorkAuthorization, "Yes"},
		{"Will you now or in the future require sponsorship?", entity.CategorySponsorship, "No"},
		{"Are you willing to relocate?", entity.CategoryRelocation, "Yes"},
		{"What is your notice period (days)?", entity.CategoryNoticePeriod, "15"},
		{"Current CTC", entity.CategoryCurrentCompensation, "1000000"},
		{"What are your salary expectations?", entity.CategoryExpectedCompensation, "1500000"},
		{"Expected salary", entity.CategoryExpectedCompensation, "1500000"},
		{"Have you previously worked for us?", entity.CategoryPriorEmployment, "No"},
		{"May we contact your references?", entity.CategoryReferenceConsent, "Yes"},
		{"List any certifications", entity.CategoryCertifications, "None"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := m.Match(entity.NormalizeLabel(tt.label))
			require.True(t, ok)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.value, got.Value)
		})
	}
}

func TestMatch_FirstRuleWins(t *testing.T) {
	m := New(testPolicy())

	got, ok := m.Match(entity.NormalizeLabel("Years of experience with degree required"))
	require.True(t, ok)
	assert.Equal(t, entity.CategoryExperience, got.Category)
	assert.Equal(t, "5", got.Value)
}

func TestMatch_NoticePeriodInMonths(t *testing.T) {
	m := New(testPolicy())

	got, ok := m.Match(entity.NormalizeLabel("Notice period (in months)"))
	require.True(t, ok)
	assert.Equal(t, "0.5", got.Value)
}

func TestDaysToMonths(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"15", "0.5"},
		{"10", "0.33"},
		{"30", "1"},
		{"45", "1.5"},
		{"60", "2"},
		{" 90 ", "3"},
		{"immediately", "immediately"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, daysToMonths(tt.in), tt.in)
	}
}

func TestMatch_Unmatched(t *testing.T) {
	m := New(testPolicy())

	_, ok := m.Match(entity.NormalizeLabel("Favorite programming language?"))
	assert.False(t, ok)

	_, ok = m.Match("")
	assert.False(t, ok)
}

func TestMatch_UnsetCategory(t *testing.T) {
	m := New(entity.NewAnswerPolicy(map[entity.Category]string{
		entity.CategoryExperience: "",
	}, nil))

	_, ok := m.Match("years of experience")
	assert.False(t, ok)
}

func TestMatch_Deterministic(t *testing.T) {
	m := New(testPolicy())
	labels := []string{
		"Years of experience with degree required",
		"Notice period (in months)",
		"Favorite programming language?",
		"",
	}

	for _, l := range labels {
		first, ok1 := m.Match(entity.NormalizeLabel(l))
		second, ok2 := m.Match(entity.NormalizeLabel(l))
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, first, second)
	}
}

func TestRulesCoverEveryCategoryInOrder(t *testing.T) {
	require.Len(t, rules, len(entity.Categories))
	for i, r := range rules {
		assert.Equal(t, entity.Categories[i], r.category)
	}
}
