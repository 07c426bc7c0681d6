// Package batch applies to a list of jobs one after another.
package batch

import (
	"context"
	"fmt"
	"time"

	"easyapply/internal/application/port/input"
	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.BatchRunner = (*UseCase)(nil)

type Options struct {
	// Limit caps the number of jobs taken from the front of the list; zero
	// means no cap.
	Limit int
	// SkipApplied skips jobs the history store already marks as applied.
	SkipApplied bool
}

type UseCase struct {
	session input.SessionRunner
	ledger  output.LedgerPort
	store   output.LedgerStorePort
	history output.HistoryPort
	pacer   output.PacerPort
	ui      output.UserInteractionPort
	logger  output.LoggerPort
	opts    Options
	now     func() time.Time
}

// New builds a batch runner. store and history may be nil.
func New(
	session input.SessionRunner,
	ledger output.LedgerPort,
	store output.LedgerStorePort,
	history output.HistoryPort,
	pacer output.PacerPort,
	ui output.UserInteractionPort,
	logger output.LoggerPort,
	opts Options,
) *UseCase {
	return &UseCase{
		session: session,
		ledger:  ledger,
		store:   store,
		history: history,
		pacer:   pacer,
		ui:      ui,
		logger:  logger.Named("batch"),
		opts:    opts,
		now:     time.Now,
	}
}

// Run processes jobs sequentially and returns the tally. The ledger is
// persisted once at the end, also when ctx is cancelled; cancellation is the
// only reason for an early return and is reported as ctx.Err().
func (uc *UseCase) Run(ctx context.Context, jobs []entity.Job) (report *entity.BatchReport, err error) {
	if uc.opts.Limit > 0 && len(jobs) > uc.opts.Limit {
		jobs = jobs[:uc.opts.Limit]
	}
	report = &entity.BatchReport{RunID: uuid.NewString()}
	log := uc.logger.WithField("run", report.RunID)
	log.Info("Starting batch", "jobs", len(jobs))

	defer func() {
		if perr := uc.persistLedger(ctx, log); perr != nil && err == nil {
			err = perr
		}
		uc.ui.ShowSummary(ctx, report)
		log.Info("Batch finished",
			"applied", report.Applied,
			"total", report.Total,
			"skipped", report.Count(entity.OutcomeSkipped),
			"failed", report.Count(entity.OutcomeFailed),
			"exhausted", report.Count(entity.OutcomeExhausted),
		)
	}()

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if uc.alreadyApplied(ctx, log, job) {
			res := entity.SessionResult{Job: job, Outcome: entity.OutcomeSkipped, Reason: "already applied"}
			uc.add(report, res)
			uc.ui.ShowJobResult(ctx, i+1, len(jobs), res)
			continue
		}

		uc.ui.ShowJobStart(ctx, i+1, len(jobs), job)
		res := uc.session.Apply(ctx, job)
		uc.add(report, res)
		uc.ui.ShowJobResult(ctx, i+1, len(jobs), res)
		uc.record(ctx, log, res)

		if err := ctx.Err(); err != nil {
			return report, err
		}
		if i < len(jobs)-1 {
			if err := uc.pacer.Pause(ctx); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}

func (uc *UseCase) add(report *entity.BatchReport, res entity.SessionResult) {
	report.Results = append(report.Results, res)
	report.Total++
	if res.Applied() {
		report.Applied++
	}
}

func (uc *UseCase) alreadyApplied(ctx context.Context, log output.LoggerPort, job entity.Job) bool {
	if uc.history == nil || !uc.opts.SkipApplied {
		return false
	}
	applied, err := uc.history.Applied(ctx, job.ID())
	if err != nil {
		log.Warn("History lookup failed", "job", job.ID(), "error", err)
		return false
	}
	return applied
}

func (uc *UseCase) record(ctx context.Context, log output.LoggerPort, res entity.SessionResult) {
	if uc.history == nil {
		return
	}
	notes := res.Reason
	if res.Err != nil {
		notes = fmt.Sprintf("%s: %v", res.Reason, res.Err)
	}
	rec := entity.ApplicationRecord{
		JobID:     res.Job.ID(),
		Title:     res.Job.Title,
		Company:   res.Job.Company,
		Link:      res.Job.Link,
		Status:    res.Outcome,
		Notes:     notes,
		AppliedAt: uc.now(),
	}
	if err := uc.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		log.Warn("History record failed", "job", rec.JobID, "error", err)
	}
}

func (uc *UseCase) persistLedger(ctx context.Context, log output.LoggerPort) error {
	if uc.store == nil {
		return nil
	}
	merged, err := uc.store.Merge(context.WithoutCancel(ctx), uc.ledger.Snapshot())
	if err != nil {
		log.Error("Ledger persist failed", "error", err)
		return fmt.Errorf("persist ledger: %w", err)
	}
	log.Info("Ledger persisted", "answered", len(merged.Answered), "unanswered", len(merged.Unanswered))
	return nil
}
