package readstore

import (
	"context"
	"encoding/json"

	"rental-hunter/internal/infra"
	"rental-hunter/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultJobRunLimit = 50

type JobRunReadStore struct {
	pool *pgxpool.Pool
}

func NewJobRunReadStore(pool *pgxpool.Pool) queries.JobQueries {
	return &JobRunReadStore{pool: pool}
}

func (s *JobRunReadStore) RecentRuns(ctx context.Context, limit int) ([]queries.JobRunView, error) {
	if limit <= 0 || limit > defaultJobRunLimit {
		limit = defaultJobRunLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, kind, started_at, completed_at, status, counts, error
		FROM job_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query job runs", err)
	}
	defer rows.Close()

	views := make([]queries.JobRunView, 0, limit)
	for rows.Next() {
		var (
			v         queries.JobRunView
			rawCounts []byte
			errMsg    *string
		)
		if err := rows.Scan(&v.ID, &v.Kind, &v.StartedAt, &v.CompletedAt, &v.Status, &rawCounts, &errMsg); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan job run row", err)
		}
		if len(rawCounts) > 0 {
			if err := json.Unmarshal(rawCounts, &v.Counts); err != nil {
				return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to decode job run counts", err)
			}
		}
		if errMsg != nil {
			v.Error = *errMsg
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate job run rows", err)
	}
	return views, nil
}
