package entity

import "time"

type NavAction string

const (
	ActionSubmit  NavAction = "submit"
	ActionReview  NavAction = "review"
	ActionAdvance NavAction = "advance"
	ActionNone    NavAction = "none"
)

type StepOutcome string

const (
	StepAdvanced    StepOutcome = "advanced"
	StepNeedsReview StepOutcome = "needs-review"
	StepSubmitted   StepOutcome = "submitted"
	StepStalled     StepOutcome = "stalled"
)

// OutcomeForAction classifies a screen by the navigation action it offers.
func OutcomeForAction(a NavAction) StepOutcome {
	switch a {
	case ActionSubmit:
		return StepSubmitted
	case ActionReview:
		return StepNeedsReview
	case ActionAdvance:
		return StepAdvanced
	default:
		return StepStalled
	}
}

type SessionOutcome string

const (
	OutcomeApplied   SessionOutcome = "Applied"
	OutcomeSkipped   SessionOutcome = "Skipped"
	OutcomeFailed    SessionOutcome = "Failed"
	OutcomeExhausted SessionOutcome = "Exhausted"
)

// StepRecord summarizes one processed screen.
type StepRecord struct {
	Index      int
	Answered   int
	Unanswered int
	Failed     int
	Outcome    StepOutcome
}

type SessionResult struct {
	Job      Job
	Outcome  SessionOutcome
	Reason   string
	Steps    int
	History  []StepRecord
	Err      error
	Duration time.Duration
}

func (r SessionResult) Applied() bool {
	return r.Outcome == OutcomeApplied
}

type BatchReport struct {
	RunID   string
	Results []SessionResult
	Applied int
	Total   int
}

// Count returns how many results ended with outcome o.
func (r BatchReport) Count(o SessionOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// ApplicationRecord is one row of application history.
type ApplicationRecord struct {
	JobID     string
	Title     string
	Company   string
	Link      string
	Status    SessionOutcome
	Notes     string
	AppliedAt time.Time
}
