package resolver

import (
	"context"
	"fmt"
	"strings"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"
)

// Strategy finds candidate controls of one kind inside a screen.
type Strategy interface {
	Name() string
	Find(ctx context.Context, scope output.ControlPort) ([]output.ControlPort, error)
}

// BySelector matches controls with a selector.
type BySelector struct {
	Selector entity.Selector
}

func (s BySelector) Name() string { return s.Selector.String() }

func (s BySelector) Find(ctx context.Context, scope output.ControlPort) ([]output.ControlPort, error) {
	return scope.FindAll(ctx, s.Selector)
}

// ByLabelText finds labels containing Text and follows their for attribute
// to the labelled control, which must match CSS.
type ByLabelText struct {
	CSS  string
	Text string
}

func (s ByLabelText) Name() string { return fmt.Sprintf("label %q -> %s", s.Text, s.CSS) }

func (s ByLabelText) Find(ctx context.Context, scope output.ControlPort) ([]output.ControlPort, error) {
	labels, err := scope.FindAll(ctx, entity.TextCSS("label[for]", s.Text))
	if err != nil {
		return nil, err
	}
	var out []output.ControlPort
	for _, l := range labels {
		id, ok, err := l.Attribute(ctx, "for")
		if err != nil || !ok || strings.TrimSpace(id) == "" {
			continue
		}
		c, err := scope.Find(ctx, entity.CSS(s.CSS+attrEquals("id", id)))
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Chains holds the ordered strategies for every field kind.
type Chains map[entity.FieldKind][]Strategy

func css(selectors ...string) []Strategy {
	out := make([]Strategy, 0, len(selectors))
	for _, s := range selectors {
		out = append(out, BySelector{Selector: entity.CSS(s)})
	}
	return out
}

// Contact inputs are excluded from the generic text chain so they are only
// filled from contact details.
const notContact = `:not([id*="phone"]):not([name*="phone"]):not([id*="email"]):not([name*="email"])`

// Numeric-looking text inputs belong to the numeric chain only.
const notNumeric = `:not([id*="numeric"]):not([inputmode="numeric"])`

// DefaultChains targets the Easy Apply markup with generic fallbacks.
func DefaultChains() Chains {
	return Chains{
		entity.FieldPhone: append(css(
			`input[name*="phone"]`,
			`input[id*="phone"]`,
			`input[id*="phoneNumber"]`,
			`input[inputmode="tel"]`,
			`input[type="tel"]`,
			`input[aria-label*="phone"]`,
			`input[placeholder*="phone"]`,
		), ByLabelText{CSS: "input", Text: "phone"}),
		entity.FieldEmail: append(css(
			`input[name*="email"]`,
			`input[id*="email"]`,
			`input[type="email"]`,
		), ByLabelText{CSS: "input", Text: "email"}),
		entity.FieldText: css(
			`input[type="text"]`+notContact+notNumeric+`, textarea`,
			`input:not([type])`+notContact+`, textarea`,
		),
		entity.FieldNumeric: css(
			`input[type="number"], input[id*="numeric"]`+notContact+`, input[inputmode="numeric"]`+notContact,
		),
		entity.FieldRadio: css(
			`fieldset:has(input[type="radio"])`,
			`div[role="radiogroup"]`,
			`fieldset`,
		),
		entity.FieldDropdown: css(
			`select`+notContact,
			`[role="combobox"] select`,
		),
		entity.FieldFile: css(
			`input[type="file"]`,
		),
	}
}

func attrEquals(name, value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `[` + name + `="` + r.Replace(value) + `"]`
}
