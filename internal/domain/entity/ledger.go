package entity

// LedgerSnapshot is the persisted shape of the answer ledger.
type LedgerSnapshot struct {
	Answered   []string `json:"answered_questions"`
	Unanswered []string `json:"unanswered_questions"`
}
