package usecase

import (
	"context"

	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/usecase/shared"
)

// JobRunRecorder persists scheduler bookkeeping: one JobRun row per pass
// execution, created at start and finalized at the end.
type JobRunRecorder struct {
	uow shared.UnitOfWork
}

func NewJobRunRecorder(uow shared.UnitOfWork) *JobRunRecorder {
	return &JobRunRecorder{uow: uow}
}

func (r *JobRunRecorder) Begin(ctx context.Context, run *jobrun.JobRun) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.JobRuns().Create(ctx, run)
	})
}

func (r *JobRunRecorder) Finish(ctx context.Context, run *jobrun.JobRun) error {
	return r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.JobRuns().Finalize(ctx, run)
	})
}
