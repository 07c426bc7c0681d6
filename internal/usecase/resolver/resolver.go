// Package resolver locates form controls inside a screen, derives their
// question labels and picks options of choice controls.
package resolver

import (
	"context"
	"fmt"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"
)

// Binding ties a question label to the controls answering it. Candidates is
// never empty: one element for text-like kinds, every radio for a group.
type Binding struct {
	Kind       entity.FieldKind
	Label      entity.QuestionLabel
	Candidates []output.ControlPort
	// Scope is the group container for radio bindings.
	Scope output.ControlPort
}

type Options struct {
	MatchMode MatchMode
}

// Order in which Resolve visits field kinds.
var kindOrder = []entity.FieldKind{
	entity.FieldPhone,
	entity.FieldEmail,
	entity.FieldText,
	entity.FieldNumeric,
	entity.FieldRadio,
	entity.FieldDropdown,
	entity.FieldFile,
}

type Resolver struct {
	chains Chains
	mode   MatchMode
	logger output.LoggerPort
}

func New(chains Chains, opts Options, logger output.LoggerPort) *Resolver {
	if chains == nil {
		chains = DefaultChains()
	}
	mode := opts.MatchMode
	if mode == "" {
		mode = MatchWord
	}
	return &Resolver{chains: chains, mode: mode, logger: logger.Named("resolver")}
}

// Resolve returns the bindings of every kind found in screen.
func (r *Resolver) Resolve(ctx context.Context, screen output.ControlPort) ([]Binding, error) {
	var out []Binding
	for _, kind := range kindOrder {
		bindings, err := r.ResolveKind(ctx, screen, kind)
		if err != nil {
			return out, err
		}
		out = append(out, bindings...)
	}
	return out, nil
}

// ResolveKind returns the bindings of one kind. Only context errors are
// returned; lookup failures of individual strategies degrade to the next one.
func (r *Resolver) ResolveKind(ctx context.Context, screen output.ControlPort, kind entity.FieldKind) ([]Binding, error) {
	controls, err := r.locate(ctx, screen, kind)
	if err != nil {
		return nil, err
	}
	if len(controls) == 0 {
		return nil, nil
	}

	switch kind {
	case entity.FieldPhone, entity.FieldEmail:
		return []Binding{{
			Kind:       kind,
			Label:      r.Label(ctx, screen, controls[0]),
			Candidates: controls[:1],
		}}, nil
	case entity.FieldRadio:
		var out []Binding
		for _, group := range controls {
			radios, err := group.FindAll(ctx, entity.CSS(`input[type="radio"]`))
			if err != nil || len(radios) == 0 {
				continue
			}
			out = append(out, Binding{
				Kind:       kind,
				Label:      r.Label(ctx, screen, group),
				Candidates: radios,
				Scope:      group,
			})
		}
		return out, nil
	default:
		out := make([]Binding, 0, len(controls))
		for _, c := range controls {
			out = append(out, Binding{
				Kind:       kind,
				Label:      r.Label(ctx, screen, c),
				Candidates: []output.ControlPort{c},
			})
		}
		return out, nil
	}
}

// locate runs the strategy chain of kind and returns the visible controls
// of the first strategy that yields any.
func (r *Resolver) locate(ctx context.Context, screen output.ControlPort, kind entity.FieldKind) ([]output.ControlPort, error) {
	for _, s := range r.chains[kind] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := s.Find(ctx, screen)
		if err != nil {
			r.logger.Debug("Strategy failed", "kind", kind, "strategy", s.Name(), "error", err)
			continue
		}
		visible := make([]output.ControlPort, 0, len(found))
		for _, c := range found {
			if ok, err := c.Visible(ctx); err == nil && ok {
				visible = append(visible, c)
			}
		}
		if len(visible) > 0 {
			r.logger.Debug("Controls located", "kind", kind, "strategy", s.Name(), "count", len(visible))
			return visible, nil
		}
	}
	return nil, nil
}

// Label derives the question label of control, trying in order the
// label[for] element, an enclosing label, aria-label, placeholder and the
// control's own legend. The result may be empty.
func (r *Resolver) Label(ctx context.Context, screen, control output.ControlPort) entity.QuestionLabel {
	sources := []func() (string, bool){
		func() (string, bool) {
			id, ok, err := control.Attribute(ctx, "id")
			if err != nil || !ok || id == "" {
				return "", false
			}
			l, err := screen.Find(ctx, entity.CSS("label"+attrEquals("for", id)))
			if err != nil {
				return "", false
			}
			text, err := l.Text(ctx)
			return text, err == nil
		},
		func() (string, bool) {
			text, ok, err := control.ClosestText(ctx, "label")
			return text, err == nil && ok
		},
		func() (string, bool) {
			v, ok, err := control.Attribute(ctx, "aria-label")
			return v, err == nil && ok
		},
		func() (string, bool) {
			v, ok, err := control.Attribute(ctx, "placeholder")
			return v, err == nil && ok
		},
		func() (string, bool) {
			legend, err := control.Find(ctx, entity.CSS("legend"))
			if err != nil {
				return "", false
			}
			text, err := legend.Text(ctx)
			return text, err == nil
		},
	}

	for _, source := range sources {
		if text, ok := source(); ok {
			if label := entity.NormalizeLabel(text); !label.Empty() {
				return label
			}
		}
	}
	return ""
}

// SelectChoice picks the first option matching the acceptable values, tried
// in preference order, and returns the text of the chosen option. It fails
// with entity.ErrNoMatchingOption when nothing matches.
func (r *Resolver) SelectChoice(ctx context.Context, b Binding, acceptable []string) (string, error) {
	switch b.Kind {
	case entity.FieldRadio:
		return r.selectRadio(ctx, b, acceptable)
	case entity.FieldDropdown:
		return r.selectDropdown(ctx, b, acceptable)
	default:
		return "", fmt.Errorf("%w: choice on %s field", entity.ErrUnsupported, b.Kind)
	}
}

type radioOption struct {
	radio output.ControlPort
	label output.ControlPort
	text  string
}

func (r *Resolver) selectRadio(ctx context.Context, b Binding, acceptable []string) (string, error) {
	options := make([]radioOption, 0, len(b.Candidates))
	for _, radio := range b.Candidates {
		options = append(options, r.radioOption(ctx, b.Scope, radio))
	}

	for _, want := range acceptable {
		for _, opt := range options {
			if !Matches(opt.text, want, r.mode) {
				continue
			}
			target := opt.radio
			if visible, err := opt.radio.Visible(ctx); (err != nil || !visible) && opt.label != nil {
				target = opt.label
			}
			if err := target.Click(ctx); err != nil {
				return "", fmt.Errorf("select %q: %w", opt.text, err)
			}
			return opt.text, nil
		}
	}
	return "", fmt.Errorf("%w: %q", entity.ErrNoMatchingOption, b.Label)
}

func (r *Resolver) radioOption(ctx context.Context, scope, radio output.ControlPort) radioOption {
	opt := radioOption{radio: radio}
	if id, ok, err := radio.Attribute(ctx, "id"); err == nil && ok && id != "" && scope != nil {
		if l, err := scope.Find(ctx, entity.CSS("label"+attrEquals("for", id))); err == nil {
			opt.label = l
			if text, err := l.Text(ctx); err == nil {
				opt.text = text
			}
		}
	}
	if opt.text == "" {
		if text, ok, err := radio.ClosestText(ctx, "label"); err == nil && ok {
			opt.text = text
		}
	}
	if opt.text == "" {
		if v, ok, err := radio.Attribute(ctx, "value"); err == nil && ok {
			opt.text = v
		}
	}
	return opt
}

func (r *Resolver) selectDropdown(ctx context.Context, b Binding, acceptable []string) (string, error) {
	sel := b.Candidates[0]
	options, err := sel.FindAll(ctx, entity.CSS("option"))
	if err != nil {
		return "", fmt.Errorf("list options: %w", err)
	}

	type dropdownOption struct {
		value string
		text  string
	}
	choices := make([]dropdownOption, 0, len(options))
	for _, o := range options {
		text, err := o.Text(ctx)
		if err != nil || text == "" {
			continue
		}
		value := text
		if v, ok, err := o.Attribute(ctx, "value"); err == nil && ok {
			value = v
		}
		choices = append(choices, dropdownOption{value: value, text: text})
	}

	for _, want := range acceptable {
		for _, c := range choices {
			if !Matches(c.text, want, r.mode) {
				continue
			}
			if err := sel.SelectOption(ctx, c.value); err != nil {
				return "", fmt.Errorf("select %q: %w", c.text, err)
			}
			return c.text, nil
		}
	}
	return "", fmt.Errorf("%w: %q", entity.ErrNoMatchingOption, b.Label)
}
