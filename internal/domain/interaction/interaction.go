// Package interaction holds the append-only log of contact attempts and
// inbound responses. Records are never mutated except to attach
// late-arriving delivery or response confirmation, matched by the
// channel-specific correlation key.
package interaction

import (
	"time"

	"rental-hunter/internal/domain/outreach"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeResponded Outcome = "responded"
)

type Interaction struct {
	ID            uuid.UUID
	ListingID     uuid.UUID
	TargetID      uuid.UUID
	Channel       outreach.Channel
	Kind          outreach.AttemptKind
	Subject       string
	Content       string
	Outcome       Outcome
	CorrelationID string
	SentAt        time.Time
	DeliveredAt   *time.Time
	RespondedAt   *time.Time
	Metadata      map[string]string
}

// NewAttempt logs one dispatched (or failed) contact attempt.
func NewAttempt(
	listingID, targetID uuid.UUID,
	kind outreach.AttemptKind,
	subject, content string,
	outcome Outcome,
	correlationID string,
	metadata map[string]string,
	now time.Time,
) *Interaction {
	return &Interaction{
		ID:            uuid.New(),
		ListingID:     listingID,
		TargetID:      targetID,
		Channel:       kind.Channel(),
		Kind:          kind,
		Subject:       subject,
		Content:       content,
		Outcome:       outcome,
		CorrelationID: correlationID,
		SentAt:        now,
		Metadata:      metadata,
	}
}
