package output

import (
	"context"

	"easyapply/internal/domain/entity"
)

// PacerPort inserts human-like delays between discrete actions.
type PacerPort interface {
	Pause(ctx context.Context) error
}

// LedgerPort accumulates answered and unanswered question labels.
type LedgerPort interface {
	Answered(label entity.QuestionLabel)
	Unanswered(label entity.QuestionLabel)
	Snapshot() entity.LedgerSnapshot
}

// LedgerStorePort persists ledger snapshots, merging by set union.
type LedgerStorePort interface {
	Load(ctx context.Context) (entity.LedgerSnapshot, error)
	Merge(ctx context.Context, snap entity.LedgerSnapshot) (entity.LedgerSnapshot, error)
}

// HistoryPort records which jobs were processed and with what outcome.
type HistoryPort interface {
	Record(ctx context.Context, rec entity.ApplicationRecord) error
	Applied(ctx context.Context, jobID string) (bool, error)
	Close() error
}

// ArtifactPort captures diagnostics for sessions that did not complete.
type ArtifactPort interface {
	Capture(ctx context.Context, surface SurfacePort, job entity.Job, reason string) error
}
