package userinteraction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

type ConsoleUserInteraction struct {
	out io.Writer
	in  io.ReadCloser
	// AutoConfirm answers every confirmation with yes.
	AutoConfirm bool
}

func NewConsoleUserInteraction(autoConfirm bool) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		out:         os.Stdout,
		in:          os.Stdin,
		AutoConfirm: autoConfirm,
	}
}

func (u *ConsoleUserInteraction) Confirm(ctx context.Context, question string) (bool, error) {
	if u.AutoConfirm {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	prompt := promptui.Select{
		Label: question,
		Items: []string{PromptYes, PromptNo},
		Stdin: u.in,
	}
	_, answer, err := prompt.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return answer == PromptYes, nil
}

func (u *ConsoleUserInteraction) ShowJobStart(ctx context.Context, index, total int, job entity.Job) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n━━━ Job %d/%d ━━━\n", index, total)

	dim := color.New(color.Faint)
	dim.Fprintf(u.out, "   %s\n   %s\n", job.String(), job.Link)
}

func (u *ConsoleUserInteraction) ShowJobResult(ctx context.Context, index, total int, result entity.SessionResult) {
	icon, c := outcomeDisplay(result.Outcome)
	c.Fprintf(u.out, "%s %s", icon, result.Outcome)

	dim := color.New(color.Faint)
	switch {
	case result.Reason != "" && result.Err != nil:
		dim.Fprintf(u.out, " (%s: %s)", result.Reason, truncate(result.Err.Error(), 200))
	case result.Reason != "":
		dim.Fprintf(u.out, " (%s)", result.Reason)
	}
	if result.Steps > 0 {
		dim.Fprintf(u.out, " steps=%d", result.Steps)
	}
	if result.Duration > 0 {
		dim.Fprintf(u.out, " in %s", result.Duration.Round(100*time.Millisecond))
	}
	fmt.Fprintln(u.out)
}

func (u *ConsoleUserInteraction) ShowSummary(ctx context.Context, report *entity.BatchReport) {
	if report == nil {
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(u.out, "\nApplied to %d of %d jobs\n", report.Applied, report.Total)

	for _, o := range []entity.SessionOutcome{
		entity.OutcomeApplied, entity.OutcomeSkipped, entity.OutcomeFailed, entity.OutcomeExhausted,
	} {
		if n := report.Count(o); n > 0 {
			icon, c := outcomeDisplay(o)
			c.Fprintf(u.out, "  %s %-9s %d\n", icon, o, n)
		}
	}
}

// ShowLedger prints the persisted question ledger.
func (u *ConsoleUserInteraction) ShowLedger(snap entity.LedgerSnapshot, limit int) {
	bold := color.New(color.Bold)
	bold.Fprintf(u.out, "Answered questions:   %d\n", len(snap.Answered))
	bold.Fprintf(u.out, "Unanswered questions: %d\n", len(snap.Unanswered))

	yellow := color.New(color.FgYellow)
	for i, q := range snap.Unanswered {
		if limit > 0 && i >= limit {
			color.New(color.Faint).Fprintf(u.out, "  ... %d more\n", len(snap.Unanswered)-limit)
			break
		}
		yellow.Fprintf(u.out, "  ? %s\n", q)
	}
}

// ShowHistory prints outcome totals and the most recent applications.
func (u *ConsoleUserInteraction) ShowHistory(counts map[entity.SessionOutcome]int, recent []entity.ApplicationRecord) {
	bold := color.New(color.Bold)
	bold.Fprintln(u.out, "\nHistory:")
	for _, o := range []entity.SessionOutcome{
		entity.OutcomeApplied, entity.OutcomeSkipped, entity.OutcomeFailed, entity.OutcomeExhausted,
	} {
		icon, c := outcomeDisplay(o)
		c.Fprintf(u.out, "  %s %-9s %d\n", icon, o, counts[o])
	}

	dim := color.New(color.Faint)
	for _, rec := range recent {
		icon, c := outcomeDisplay(rec.Status)
		c.Fprintf(u.out, "  %s ", icon)
		fmt.Fprintf(u.out, "%s at %s", truncate(rec.Title, 60), truncate(rec.Company, 40))
		dim.Fprintf(u.out, " %s %s\n", rec.AppliedAt.Format("2006-01-02 15:04"), rec.Link)
	}
}

// ShowFillResults prints what a dry run would do on one screen.
func (u *ConsoleUserInteraction) ShowFillResults(results []entity.FillResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, r := range results {
		label := r.Label.String()
		if label == "" {
			label = "(no label)"
		}
		switch r.Status {
		case entity.FillAnswered:
			green.Fprintf(u.out, "✓ [%s] %s → %s\n", r.Kind, label, r.Value)
		case entity.FillUnmatched:
			yellow.Fprintf(u.out, "? [%s] %s\n", r.Kind, label)
		default:
			red.Fprintf(u.out, "✗ [%s] %s: %v\n", r.Kind, label, r.Err)
		}
	}
}

func outcomeDisplay(o entity.SessionOutcome) (string, *color.Color) {
	switch o {
	case entity.OutcomeApplied:
		return "✓", color.New(color.FgGreen, color.Bold)
	case entity.OutcomeSkipped:
		return "↷", color.New(color.FgYellow)
	case entity.OutcomeExhausted:
		return "⧗", color.New(color.FgMagenta)
	default:
		return "✗", color.New(color.FgRed)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
