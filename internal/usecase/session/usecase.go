// Package session drives one job application from the job page to a
// terminal outcome.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"easyapply/internal/application/port/input"
	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"
	"easyapply/internal/usecase/navigation"
	"easyapply/internal/usecase/step"
)

var _ input.SessionRunner = (*UseCase)(nil)

type UseCase struct {
	surface   output.SurfacePort
	steps     *step.Processor
	nav       *navigation.Resolver
	pacer     output.PacerPort
	artifacts output.ArtifactPort
	logger    output.LoggerPort
	cfg       Config
}

// New builds a session runner. artifacts may be nil.
func New(
	surface output.SurfacePort,
	steps *step.Processor,
	nav *navigation.Resolver,
	pacer output.PacerPort,
	artifacts output.ArtifactPort,
	logger output.LoggerPort,
	cfg Config,
) *UseCase {
	return &UseCase{
		surface:   surface,
		steps:     steps,
		nav:       nav,
		pacer:     pacer,
		artifacts: artifacts,
		logger:    logger.Named("session"),
		cfg:       cfg,
	}
}

// Apply runs the Discovering, Filling and Navigating states until the form
// is submitted, the step budget runs out or no control moves it forward.
// Errors and panics become a Failed result.
func (uc *UseCase) Apply(ctx context.Context, job entity.Job) (res entity.SessionResult) {
	start := time.Now()
	res = entity.SessionResult{Job: job}
	log := uc.logger.WithFields(map[string]any{"job": job.ID(), "title": job.String()})

	defer func() {
		if r := recover(); r != nil {
			res.Outcome = entity.OutcomeFailed
			res.Err = fmt.Errorf("%w: panic: %v", entity.ErrInteraction, r)
			res.Reason = "unexpected failure"
		}
		res.Steps = len(res.History)
		res.Duration = time.Since(start)
		uc.finish(ctx, log, &res)
	}()

	log.Info("Starting application", "link", job.Link)
	uc.run(ctx, log, &res)
	return res
}

func (uc *UseCase) run(ctx context.Context, log output.LoggerPort, res *entity.SessionResult) {
	fail := func(reason string, err error) {
		res.Outcome, res.Reason, res.Err = entity.OutcomeFailed, reason, err
	}

	if err := uc.surface.Navigate(ctx, res.Job.Link); err != nil {
		fail("open job page", err)
		return
	}
	if err := uc.surface.WaitReady(ctx, uc.cfg.PageReadyTimeout); err != nil {
		fail("job page not ready", err)
		return
	}

	entry, err := uc.findEntry(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fail("cancelled", ctx.Err())
			return
		}
		res.Outcome, res.Reason = entity.OutcomeSkipped, "no easy apply control"
		return
	}
	if err := entry.Click(ctx); err != nil {
		fail("activate easy apply", err)
		return
	}
	if _, err := uc.surface.WaitFor(ctx, uc.cfg.ModalSelector, uc.cfg.FormTimeout); err != nil {
		fail("form did not open", err)
		return
	}

	for steps := 0; ; steps++ {
		if err := ctx.Err(); err != nil {
			fail("cancelled", err)
			return
		}
		if steps >= uc.cfg.MaxSteps {
			res.Outcome = entity.OutcomeExhausted
			res.Reason = fmt.Sprintf("no submit after %d steps", uc.cfg.MaxSteps)
			res.Err = fmt.Errorf("%w: %d", entity.ErrStepBudgetExceeded, uc.cfg.MaxSteps)
			return
		}

		// The screen root is re-acquired every step; earlier handles may be stale.
		screen, err := uc.surface.WaitFor(ctx, uc.cfg.ModalSelector, uc.cfg.FormTimeout)
		if err != nil {
			fail("form disappeared", err)
			return
		}

		report, err := uc.steps.Process(ctx, screen)
		if err != nil {
			fail("fill screen", err)
			return
		}
		decision, err := uc.nav.Resolve(ctx, screen)
		if err != nil {
			fail("resolve navigation", err)
			return
		}

		record := report.Record(steps+1, entity.OutcomeForAction(decision.Action))
		res.History = append(res.History, record)
		log.Debug("Step processed",
			"step", record.Index,
			"answered", record.Answered,
			"unanswered", record.Unanswered,
			"failed", record.Failed,
			"action", decision.Action,
		)

		if decision.Action == entity.ActionNone {
			fail("no way forward", fmt.Errorf("%w: step %d", entity.ErrNavigationStuck, record.Index))
			return
		}
		if err := decision.Control.Click(ctx); err != nil {
			fail(fmt.Sprintf("click %s", decision.Action), err)
			return
		}
		if decision.Action == entity.ActionSubmit {
			uc.dismiss(ctx, log)
			res.Outcome, res.Reason = entity.OutcomeApplied, "submitted"
			return
		}
		if err := uc.pacer.Pause(ctx); err != nil {
			fail("cancelled", err)
			return
		}
	}
}

func (uc *UseCase) findEntry(ctx context.Context) (output.ControlPort, error) {
	for i, sel := range uc.cfg.EntrySelectors {
		var (
			c   output.ControlPort
			err error
		)
		if i == 0 {
			c, err = uc.surface.WaitFor(ctx, sel, uc.cfg.EntryTimeout)
		} else {
			c, err = uc.surface.FindOne(ctx, sel)
		}
		if err != nil {
			continue
		}
		if ok, err := c.Visible(ctx); err == nil && ok {
			return c, nil
		}
	}
	return nil, entity.ErrElementNotFound
}

// dismiss closes the confirmation dialog if one shows up.
func (uc *UseCase) dismiss(ctx context.Context, log output.LoggerPort) {
	for _, sel := range uc.cfg.DismissSelectors {
		c, err := uc.surface.FindOne(ctx, sel)
		if err != nil {
			continue
		}
		if err := c.Click(ctx); err != nil {
			log.Debug("Dismiss failed", "selector", sel.String(), "error", err)
			continue
		}
		return
	}
}

func (uc *UseCase) finish(ctx context.Context, log output.LoggerPort, res *entity.SessionResult) {
	fields := []any{
		"outcome", res.Outcome,
		"reason", res.Reason,
		"steps", res.Steps,
		"duration", res.Duration.Round(time.Millisecond).String(),
	}
	switch res.Outcome {
	case entity.OutcomeApplied, entity.OutcomeSkipped:
		log.Info("Application finished", fields...)
		return
	}
	log.Warn("Application did not complete", append(fields, "error", res.Err)...)

	if uc.artifacts == nil || errors.Is(res.Err, context.Canceled) || ctx.Err() != nil {
		return
	}
	if err := uc.artifacts.Capture(ctx, uc.surface, res.Job, res.Reason); err != nil {
		log.Warn("Capture failed", "error", err)
	}
}
