package repository

import (
	"context"
	"encoding/json"
	"time"

	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/infra"
	"rental-hunter/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
)

type JobRunRepository struct {
	db DBTX
}

func NewJobRunRepository(db DBTX) *JobRunRepository {
	return &JobRunRepository{db: db}
}

func (r *JobRunRepository) Create(ctx context.Context, run *jobrun.JobRun) error {
	counts, err := json.Marshal(run.Counts)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to encode job counts", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO job_runs (id, kind, started_at, completed_at, counts, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Kind.String(), run.StartedAt, run.CompletedAt,
		counts, string(run.Status), run.Error,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create job run", err)
	}
	return nil
}

func (r *JobRunRepository) Finalize(ctx context.Context, run *jobrun.JobRun) error {
	counts, err := json.Marshal(run.Counts)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to encode job counts", err)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE job_runs
		SET completed_at = $2, counts = $3, status = $4, error = $5
		WHERE id = $1`,
		run.ID, run.CompletedAt, counts, string(run.Status), run.Error,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to finalize job run", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "job run not found",
			errs.Mark(pgx.ErrNoRows, errs.ErrJobRunNotFound))
	}
	return nil
}

func (r *JobRunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM job_runs WHERE started_at < $1`, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to purge job runs", err)
	}
	return tag.RowsAffected(), nil
}
