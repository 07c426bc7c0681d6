package userinteraction

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"easyapply/internal/domain/entity"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func newTestConsole(t *testing.T) (*ConsoleUserInteraction, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	buf := &bytes.Buffer{}
	return &ConsoleUserInteraction{out: buf}, buf
}

func TestConsole_ShowJob(t *testing.T) {
	u, buf := newTestConsole(t)
	ctx := context.Background()
	job := entity.Job{Title: "Go Engineer", Company: "Acme", Link: "https://www.linkedin.com/jobs/view/1/"}

	u.ShowJobStart(ctx, 1, 3, job)
	u.ShowJobResult(ctx, 1, 3, entity.SessionResult{
		Job:      job,
		Outcome:  entity.OutcomeFailed,
		Reason:   "no way forward",
		Err:      errors.New("navigation stuck"),
		Steps:    2,
		Duration: 1500 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "Job 1/3")
	assert.Contains(t, out, "Go Engineer at Acme")
	assert.Contains(t, out, "✗ Failed (no way forward: navigation stuck) steps=2 in 1.5s")
}

func TestConsole_ShowSummary(t *testing.T) {
	u, buf := newTestConsole(t)

	u.ShowSummary(context.Background(), &entity.BatchReport{
		Applied: 1,
		Total:   3,
		Results: []entity.SessionResult{
			{Outcome: entity.OutcomeApplied},
			{Outcome: entity.OutcomeSkipped},
			{Outcome: entity.OutcomeSkipped},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Applied to 1 of 3 jobs")
	assert.Contains(t, out, "Skipped   2")
	assert.NotContains(t, out, "Exhausted")
}

func TestConsole_ShowLedger(t *testing.T) {
	u, buf := newTestConsole(t)

	u.ShowLedger(entity.LedgerSnapshot{
		Answered:   []string{"a"},
		Unanswered: []string{"q1", "q2", "q3"},
	}, 2)

	out := buf.String()
	assert.Contains(t, out, "Unanswered questions: 3")
	assert.Contains(t, out, "? q1")
	assert.NotContains(t, out, "? q3")
	assert.Contains(t, out, "... 1 more")
}

func TestConsole_ShowFillResults(t *testing.T) {
	u, buf := newTestConsole(t)

	u.ShowFillResults([]entity.FillResult{
		{Kind: entity.FieldText, Label: "years of experience", Status: entity.FillAnswered, Value: "5"},
		{Kind: entity.FieldRadio, Label: "", Status: entity.FillUnmatched},
	})

	out := buf.String()
	assert.Contains(t, out, "✓ [text] years of experience → 5")
	assert.Contains(t, out, "? [radio-group] (no label)")
}

func TestConsole_AutoConfirm(t *testing.T) {
	u := &ConsoleUserInteraction{AutoConfirm: true}
	ok, err := u.Confirm(context.Background(), "Apply?")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestConsole_ShowHistory(t *testing.T) {
	u, buf := newTestConsole(t)

	u.ShowHistory(
		map[entity.SessionOutcome]int{entity.OutcomeApplied: 4, entity.OutcomeFailed: 1},
		[]entity.ApplicationRecord{{
			Title:     "Go Engineer",
			Company:   "Acme",
			Link:      "https://www.linkedin.com/jobs/view/1/",
			Status:    entity.OutcomeApplied,
			AppliedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		}},
	)

	out := buf.String()
	assert.Contains(t, out, "✓ Applied   4")
	assert.Contains(t, out, "⧗ Exhausted 0")
	assert.Contains(t, out, "✓ Go Engineer at Acme 2024-05-01 10:00")
}
