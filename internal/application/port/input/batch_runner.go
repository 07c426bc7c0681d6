package input

import (
	"context"

	"easyapply/internal/domain/entity"
)

type BatchRunner interface {
	Run(ctx context.Context, jobs []entity.Job) (*entity.BatchReport, error)
}
