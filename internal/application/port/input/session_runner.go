package input

import (
	"context"

	"easyapply/internal/domain/entity"
)

// SessionRunner applies to a single job. It never returns an error: every
// failure is folded into the result.
type SessionRunner interface {
	Apply(ctx context.Context, job entity.Job) entity.SessionResult
}
