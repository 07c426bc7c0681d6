package service

import (
	"sort"
	"sync"

	"easyapply/internal/application/port/output"
	"easyapply/internal/domain/entity"
)

var _ output.LedgerPort = (*AnswerLedger)(nil)

// AnswerLedger is the append-only record of which question labels were
// answered during a run. Appends are serialized so sessions may share it.
type AnswerLedger struct {
	mu         sync.Mutex
	answered   map[string]struct{}
	unanswered map[string]struct{}
}

func NewAnswerLedger() *AnswerLedger {
	return &AnswerLedger{
		answered:   make(map[string]struct{}),
		unanswered: make(map[string]struct{}),
	}
}

func (l *AnswerLedger) Answered(label entity.QuestionLabel) {
	if label.Empty() {
		return
	}
	l.mu.Lock()
	l.answered[label.String()] = struct{}{}
	l.mu.Unlock()
}

func (l *AnswerLedger) Unanswered(label entity.QuestionLabel) {
	if label.Empty() {
		return
	}
	l.mu.Lock()
	l.unanswered[label.String()] = struct{}{}
	l.mu.Unlock()
}

func (l *AnswerLedger) Snapshot() entity.LedgerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return entity.LedgerSnapshot{
		Answered:   sortedKeys(l.answered),
		Unanswered: sortedKeys(l.unanswered),
	}
}

// MergeSnapshots returns the per-field set union of the given snapshots.
// The result is sorted and free of duplicates, so merging is idempotent.
func MergeSnapshots(snaps ...entity.LedgerSnapshot) entity.LedgerSnapshot {
	answered := make(map[string]struct{})
	unanswered := make(map[string]struct{})
	for _, s := range snaps {
		for _, q := range s.Answered {
			answered[q] = struct{}{}
		}
		for _, q := range s.Unanswered {
			unanswered[q] = struct{}{}
		}
	}
	return entity.LedgerSnapshot{
		Answered:   sortedKeys(answered),
		Unanswered: sortedKeys(unanswered),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
