package queries

import (
	"context"
	"time"

	"rental-hunter/internal/domain/jobrun"

	"github.com/google/uuid"
)

type JobRunView struct {
	ID          uuid.UUID     `json:"id"`
	Kind        string        `json:"kind"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Status      string        `json:"status"`
	Counts      jobrun.Counts `json:"counts"`
	Error       string        `json:"error,omitempty"`
}

type JobQueries interface {
	RecentRuns(ctx context.Context, limit int) ([]JobRunView, error)
}
