// Package jobrun records one row per execution of a scheduled pass.
package jobrun

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCollection Kind = "collection"
	KindInitiation Kind = "initiation"
	KindFollowUp   Kind = "follow_up"
	KindRetention  Kind = "retention"
)

func (k Kind) Valid() bool {
	switch k {
	case KindCollection, KindInitiation, KindFollowUp, KindRetention:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Counts accumulates per-pass outcome tallies. Passes only fill the fields
// that mean something for their kind.
type Counts struct {
	Found      int `json:"found"`
	New        int `json:"new"`
	Duplicates int `json:"duplicates"`
	Updated    int `json:"updated"`
	Contacted  int `json:"contacted"`
	Skipped    int `json:"skipped"`
	Purged     int `json:"purged"`
	Errors     int `json:"errors"`
}

type JobRun struct {
	ID          uuid.UUID
	Kind        Kind
	StartedAt   time.Time
	CompletedAt *time.Time
	Counts      Counts
	Status      Status
	Error       string
}

func Start(kind Kind, now time.Time) *JobRun {
	return &JobRun{
		ID:        uuid.New(),
		Kind:      kind,
		StartedAt: now,
		Status:    StatusRunning,
	}
}

func (r *JobRun) Complete(counts Counts, now time.Time) {
	r.Counts = counts
	r.Status = StatusCompleted
	at := now
	r.CompletedAt = &at
}

func (r *JobRun) Fail(counts Counts, err error, now time.Time) {
	r.Counts = counts
	r.Status = StatusFailed
	if err != nil {
		r.Error = err.Error()
	}
	at := now
	r.CompletedAt = &at
}
