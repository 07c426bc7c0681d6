// Package matcher maps question labels to canonical answers from an
// AnswerPolicy using ordered keyword rules.
package matcher

import (
	"math"
	"strconv"
	"strings"

	"easyapply/internal/domain/entity"
)

type rule struct {
	category entity.Category
	keywords []string
}

// Rules are evaluated top to bottom; the first rule with a keyword contained
// in the label wins, even if a later rule matches more keywords.
var rules = []rule{
	{entity.CategoryExperience, []string{"years of experience", "years experience", "how many years"}},
	{entity.CategoryEducation, []string{"education", "degree", "qualification", "highest level"}},
	{entity.CategoryWorkAuthorization, []string{"authorized to work", "legally authorized", "work authorization", "right to work"}},
	{entity.CategorySponsorship, []string{"visa sponsorship", "require sponsorship", "need sponsorship"}},
	{entity.CategoryRelocation, []string{"comfortable working", "willing to work", "work onsite", "relocate", "work in"}},
	{entity.CategoryNoticePeriod, []string{"notice period", "availability", "when can you start", "start date", "join"}},
	{entity.CategoryCurrentCompensation, []string{"current fixed ctc", "current ctc", "current salary", "current compensation"}},
	{entity.CategoryExpectedCompensation, []string{"salary", "compensation", "expected ctc", "salary expectation", "expected salary"}},
	{entity.CategoryPriorEmployment, []string{"previously worked", "worked for", "former employee"}},
	{entity.CategoryReferenceConsent, []string{"contact", "reference", "previous employer"}},
	{entity.CategoryCertifications, []string{"certification", "certified", "certificate"}},
}

const daysPerMonth = 30

type Answer struct {
	Category entity.Category
	Value    string
}

type Matcher struct {
	policy entity.AnswerPolicy
}

func New(policy entity.AnswerPolicy) *Matcher {
	return &Matcher{policy: policy}
}

// Match returns the answer for label, or false when no rule applies or the
// matching category has no configured value.
func (m *Matcher) Match(label entity.QuestionLabel) (Answer, bool) {
	q := string(entity.NormalizeLabel(string(label)))
	if q == "" {
		return Answer{}, false
	}

	category, ok := categoryFor(q)
	if !ok {
		return Answer{}, false
	}

	value, ok := m.policy.Answer(category)
	if !ok {
		return Answer{}, false
	}

	if category == entity.CategoryNoticePeriod && strings.Contains(q, "month") {
		value = daysToMonths(value)
	}

	return Answer{Category: category, Value: value}, true
}

func categoryFor(q string) (entity.Category, bool) {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.category, true
			}
		}
	}
	return "", false
}

// daysToMonths converts a day count to months rounded to two decimals.
// Values that are not numbers are returned unchanged.
func daysToMonths(days string) string {
	d, err := strconv.ParseFloat(strings.TrimSpace(days), 64)
	if err != nil {
		return days
	}
	months := math.Round(d/daysPerMonth*100) / 100
	return strconv.FormatFloat(months, 'f', -1, 64)
}
