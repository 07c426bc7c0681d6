package entity

import "strings"

type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldNumeric  FieldKind = "numeric"
	FieldRadio    FieldKind = "radio-group"
	FieldDropdown FieldKind = "dropdown"
	FieldFile     FieldKind = "file"
	FieldPhone    FieldKind = "phone"
	FieldEmail    FieldKind = "email"
)

// QuestionLabel is the normalized text describing a control.
type QuestionLabel string

// NormalizeLabel trims, collapses inner whitespace and case-folds s.
func NormalizeLabel(s string) QuestionLabel {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return QuestionLabel(strings.ToLower(s))
}

func (l QuestionLabel) String() string {
	return string(l)
}

func (l QuestionLabel) Empty() bool {
	return l == ""
}

type FillStatus string

const (
	FillAnswered  FillStatus = "answered"
	FillUnmatched FillStatus = "unmatched"
	FillFailed    FillStatus = "failed"
)

// FillResult is the outcome of resolving and filling a single binding.
type FillResult struct {
	Kind   FieldKind
	Label  QuestionLabel
	Status FillStatus
	Value  string
	Err    error
}
