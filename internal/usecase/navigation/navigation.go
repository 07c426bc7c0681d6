// Package navigation decides which control moves a form forward.
package navigation

import (
	"context"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"
)

// Decision is the chosen action and the control performing it. Control is
// nil for entity.ActionNone.
type Decision struct {
	Action  entity.NavAction
	Control output.ControlPort
}

// Controls lists the selectors per action, each tried in order.
type Controls struct {
	Submit  []entity.Selector
	Review  []entity.Selector
	Advance []entity.Selector
}

func DefaultControls() Controls {
	return Controls{
		Submit: []entity.Selector{
			entity.TextCSS("button", "Submit application"),
			entity.CSS(`button[aria-label="Submit application"]`),
		},
		Review: []entity.Selector{
			entity.TextCSS("button", "Review"),
			entity.CSS(`button[aria-label="Review your application"]`),
		},
		Advance: []entity.Selector{
			entity.TextCSS("button", "Next"),
			entity.CSS(`button[aria-label="Continue to next step"]`),
		},
	}
}

type Resolver struct {
	controls Controls
	logger   output.LoggerPort
}

func New(controls Controls, logger output.LoggerPort) *Resolver {
	return &Resolver{controls: controls, logger: logger.Named("navigation")}
}

// Resolve picks Submit over Review over Advance. Only visible controls
// count; when none is present the decision is entity.ActionNone.
func (r *Resolver) Resolve(ctx context.Context, screen output.ControlPort) (Decision, error) {
	candidates := []struct {
		action    entity.NavAction
		selectors []entity.Selector
	}{
		{entity.ActionSubmit, r.controls.Submit},
		{entity.ActionReview, r.controls.Review},
		{entity.ActionAdvance, r.controls.Advance},
	}

	for _, c := range candidates {
		for _, sel := range c.selectors {
			if err := ctx.Err(); err != nil {
				return Decision{}, err
			}
			found, err := screen.FindAll(ctx, sel)
			if err != nil {
				r.logger.Debug("Control lookup failed", "action", c.action, "selector", sel.String(), "error", err)
				continue
			}
			for _, control := range found {
				if ok, err := control.Visible(ctx); err == nil && ok {
					return Decision{Action: c.action, Control: control}, nil
				}
			}
		}
	}
	return Decision{Action: entity.ActionNone}, nil
}
