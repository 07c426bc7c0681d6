package output

import (
	"context"

	"easyapply/internal/domain/entity"
)

type UserInteractionPort interface {
	Confirm(ctx context.Context, question string) (bool, error)

	ShowJobStart(ctx context.Context, index, total int, job entity.Job)
	ShowJobResult(ctx context.Context, index, total int, result entity.SessionResult)
	ShowSummary(ctx context.Context, report *entity.BatchReport)
}
