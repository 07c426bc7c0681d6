// Package step fills the questions of a single form screen.
package step

import (
	"context"
	"errors"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"
	"easyapply/internal/usecase/matcher"
	"easyapply/internal/usecase/resolver"
)

// Report lists the result of every binding found on a screen.
type Report struct {
	Results []entity.FillResult
}

func (r Report) Count(status entity.FillStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Record summarizes the report as the index-th step of a session.
func (r Report) Record(index int, outcome entity.StepOutcome) entity.StepRecord {
	return entity.StepRecord{
		Index:      index,
		Answered:   r.Count(entity.FillAnswered),
		Unanswered: r.Count(entity.FillUnmatched),
		Failed:     r.Count(entity.FillFailed),
		Outcome:    outcome,
	}
}

type Processor struct {
	resolver *resolver.Resolver
	matcher  *matcher.Matcher
	policy   entity.AnswerPolicy
	ledger   output.LedgerPort
	contact  entity.Contact
	pacer    output.PacerPort
	logger   output.LoggerPort
}

func New(
	res *resolver.Resolver,
	policy entity.AnswerPolicy,
	ledger output.LedgerPort,
	contact entity.Contact,
	pacer output.PacerPort,
	logger output.LoggerPort,
) *Processor {
	return &Processor{
		resolver: res,
		matcher:  matcher.New(policy),
		policy:   policy,
		ledger:   ledger,
		contact:  contact,
		pacer:    pacer,
		logger:   logger.Named("step"),
	}
}

// Process fills every recognizable control of screen in the order contact
// fields, text and numeric inputs, radio groups, dropdowns, file inputs.
// A failing control never stops the screen; only context errors are
// returned, together with the results gathered so far.
func (p *Processor) Process(ctx context.Context, screen output.ControlPort) (Report, error) {
	var report Report

	groups := []struct {
		kinds []entity.FieldKind
		fill  func(context.Context, resolver.Binding) (entity.FillResult, bool)
	}{
		{[]entity.FieldKind{entity.FieldPhone, entity.FieldEmail}, p.fillContact},
		{[]entity.FieldKind{entity.FieldText, entity.FieldNumeric}, p.fillText},
		{[]entity.FieldKind{entity.FieldRadio, entity.FieldDropdown}, p.fillChoice},
		{[]entity.FieldKind{entity.FieldFile}, p.fillFile},
	}

	for _, g := range groups {
		for _, kind := range g.kinds {
			bindings, err := p.resolver.ResolveKind(ctx, screen, kind)
			if err != nil {
				return report, err
			}
			for _, b := range bindings {
				if err := ctx.Err(); err != nil {
					return report, err
				}
				res, acted := g.fill(ctx, b)
				if !acted {
					continue
				}
				report.Results = append(report.Results, res)
				p.logResult(res)
				if err := p.pacer.Pause(ctx); err != nil {
					return report, err
				}
			}
		}
	}
	return report, nil
}

// fillContact fills phone and email from the configured contact details.
// Contact fields are not policy questions and stay out of the ledger.
func (p *Processor) fillContact(ctx context.Context, b resolver.Binding) (entity.FillResult, bool) {
	value := p.contact.Phone
	if b.Kind == entity.FieldEmail {
		value = p.contact.Email
	}
	if value == "" {
		return entity.FillResult{}, false
	}
	res := entity.FillResult{Kind: b.Kind, Label: b.Label, Value: value, Status: entity.FillAnswered}
	if err := guard(func() error { return b.Candidates[0].Fill(ctx, value) }); err != nil {
		res.Status, res.Err = entity.FillFailed, err
	}
	return res, true
}

func (p *Processor) fillText(ctx context.Context, b resolver.Binding) (entity.FillResult, bool) {
	res := entity.FillResult{Kind: b.Kind, Label: b.Label}

	answer, ok := p.matcher.Match(b.Label)
	if !ok {
		res.Status = entity.FillUnmatched
		p.ledger.Unanswered(b.Label)
		return res, true
	}

	res.Value = answer.Value
	if err := guard(func() error { return b.Candidates[0].Fill(ctx, answer.Value) }); err != nil {
		res.Status, res.Err = entity.FillFailed, err
		p.ledger.Unanswered(b.Label)
		return res, true
	}
	res.Status = entity.FillAnswered
	p.ledger.Answered(b.Label)
	return res, true
}

func (p *Processor) fillChoice(ctx context.Context, b resolver.Binding) (entity.FillResult, bool) {
	res := entity.FillResult{Kind: b.Kind, Label: b.Label}

	acceptable := p.policy.DefaultChoices()
	if answer, ok := p.matcher.Match(b.Label); ok {
		acceptable = resolver.Synonyms(answer.Value)
	}
	if len(acceptable) == 0 {
		res.Status = entity.FillUnmatched
		p.ledger.Unanswered(b.Label)
		return res, true
	}

	var chosen string
	err := guard(func() error {
		var err error
		chosen, err = p.resolver.SelectChoice(ctx, b, acceptable)
		return err
	})
	switch {
	case err == nil:
		res.Status, res.Value = entity.FillAnswered, chosen
		p.ledger.Answered(b.Label)
	case errors.Is(err, entity.ErrNoMatchingOption):
		res.Status, res.Err = entity.FillUnmatched, err
		p.ledger.Unanswered(b.Label)
	default:
		res.Status, res.Err = entity.FillFailed, err
		p.ledger.Unanswered(b.Label)
	}
	return res, true
}

// fillFile uploads the resume when a path is configured.
func (p *Processor) fillFile(ctx context.Context, b resolver.Binding) (entity.FillResult, bool) {
	if p.contact.ResumePath == "" {
		return entity.FillResult{}, false
	}
	res := entity.FillResult{Kind: b.Kind, Label: b.Label, Value: p.contact.ResumePath, Status: entity.FillAnswered}
	if err := guard(func() error { return b.Candidates[0].SetFiles(ctx, p.contact.ResumePath) }); err != nil {
		res.Status, res.Err = entity.FillFailed, err
	}
	return res, true
}

func (p *Processor) logResult(res entity.FillResult) {
	switch res.Status {
	case entity.FillAnswered:
		p.logger.Debug("Field answered", "kind", res.Kind, "label", res.Label, "value", res.Value)
	case entity.FillUnmatched:
		p.logger.Info("Question unanswered", "kind", res.Kind, "label", res.Label)
	default:
		p.logger.Warn("Field failed", "kind", res.Kind, "label", res.Label, "error", res.Err)
	}
}
