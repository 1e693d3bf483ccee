package outreach

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTerminalState    = errors.New("target is in a terminal state")
	ErrInvalidState     = errors.New("invalid outreach state")
	ErrAlreadyResponded = errors.New("target already responded")
)

// Target tracks the contact campaign for exactly one canonical listing.
type Target struct {
	id            uuid.UUID
	listingID     uuid.UUID
	name          string
	agencyName    string
	email         string
	phone         string
	state         State
	attemptCount  int
	lastAttemptAt *time.Time
	nextAttemptAt *time.Time
	responded     bool
	respondedAt   *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewTarget creates a pending target for a canonical listing. Contact
// identity fields may be empty until extraction fills them in.
func NewTarget(listingID uuid.UUID, name, agencyName, email, phone string, now time.Time) *Target {
	return &Target{
		id:         uuid.New(),
		listingID:  listingID,
		name:       name,
		agencyName: agencyName,
		email:      email,
		phone:      phone,
		state:      StatePending,
		createdAt:  now,
		updatedAt:  now,
	}
}

func ReconstructTarget(
	id, listingID uuid.UUID,
	name, agencyName, email, phone string,
	state State,
	attemptCount int,
	lastAttemptAt, nextAttemptAt *time.Time,
	responded bool,
	respondedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Target, error) {
	if !state.Valid() {
		return nil, ErrInvalidState
	}
	return &Target{
		id:            id,
		listingID:     listingID,
		name:          name,
		agencyName:    agencyName,
		email:         email,
		phone:         phone,
		state:         state,
		attemptCount:  attemptCount,
		lastAttemptAt: lastAttemptAt,
		nextAttemptAt: nextAttemptAt,
		responded:     responded,
		respondedAt:   respondedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

// RecordAttempt applies a successfully dispatched contact attempt. Dispatch
// failures never reach this method, so a failed send leaves the attempt
// budget untouched.
func (t *Target) RecordAttempt(now time.Time, policy Policy) error {
	if t.state.Terminal() {
		return ErrTerminalState
	}
	t.attemptCount++
	last := now
	t.lastAttemptAt = &last
	next := now.Add(policy.FollowUpDelay)
	t.nextAttemptAt = &next
	switch {
	case t.attemptCount >= policy.MaxAttempts:
		t.state = StateExhausted
		t.nextAttemptAt = nil
	case t.attemptCount == 1:
		t.state = StateContacted
	default:
		t.state = StateAwaitingResponse
	}
	t.updatedAt = now
	return nil
}

// MarkResponded records an inbound response. Reachable from any
// non-terminal state; recording twice is rejected so response timestamps
// stay stable.
func (t *Target) MarkResponded(now time.Time) error {
	if t.responded {
		return ErrAlreadyResponded
	}
	// A late response after exhaustion still flips the target; it is worth
	// surfacing even when the campaign already gave up.
	t.state = StateResponded
	t.responded = true
	at := now
	t.respondedAt = &at
	t.nextAttemptAt = nil
	t.updatedAt = now
	return nil
}

func (t *Target) ID() uuid.UUID             { return t.id }
func (t *Target) ListingID() uuid.UUID      { return t.listingID }
func (t *Target) Name() string              { return t.name }
func (t *Target) AgencyName() string        { return t.agencyName }
func (t *Target) Email() string             { return t.email }
func (t *Target) Phone() string             { return t.phone }
func (t *Target) State() State              { return t.state }
func (t *Target) AttemptCount() int         { return t.attemptCount }
func (t *Target) LastAttemptAt() *time.Time { return t.lastAttemptAt }
func (t *Target) NextAttemptAt() *time.Time { return t.nextAttemptAt }
func (t *Target) Responded() bool           { return t.responded }
func (t *Target) RespondedAt() *time.Time   { return t.respondedAt }
func (t *Target) CreatedAt() time.Time      { return t.createdAt }
func (t *Target) UpdatedAt() time.Time      { return t.updatedAt }
