package response

import (
	"time"

	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/scheduler"
	"rental-hunter/internal/usecase/queries"

	"github.com/google/uuid"
)

type JobRunResponse struct {
	ID          uuid.UUID     `json:"id"`
	Kind        string        `json:"kind"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Status      string        `json:"status"`
	Counts      jobrun.Counts `json:"counts"`
	Error       string        `json:"error,omitempty"`
}

type SchedulerEntryResponse struct {
	Kind    string    `json:"kind"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"next_run"`
	Running bool      `json:"running"`
}

type JobsResponse struct {
	Entries []SchedulerEntryResponse `json:"entries"`
	Recent  []JobRunResponse         `json:"recent_runs"`
}

func FromJobRunView(v queries.JobRunView) JobRunResponse {
	return JobRunResponse{
		ID:          v.ID,
		Kind:        v.Kind,
		StartedAt:   v.StartedAt,
		CompletedAt: v.CompletedAt,
		Status:      v.Status,
		Counts:      v.Counts,
		Error:       v.Error,
	}
}

func FromJobs(entries []scheduler.EntryStatus, runs []queries.JobRunView) JobsResponse {
	resp := JobsResponse{
		Entries: make([]SchedulerEntryResponse, 0, len(entries)),
		Recent:  make([]JobRunResponse, 0, len(runs)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, SchedulerEntryResponse{
			Kind:    e.Kind,
			Spec:    e.Spec,
			NextRun: e.NextRun,
			Running: e.Running,
		})
	}
	for _, r := range runs {
		resp.Recent = append(resp.Recent, FromJobRunView(r))
	}
	return resp
}
