package usecase

import (
	"context"
	"log/slog"

	"rental-hunter/internal/domain/interaction"
	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/usecase/shared"
)

// contactEngine runs one escalation step for one target: evaluate the
// decision, dispatch over the selected channel, and persist the transition.
// Shared by the initiation and follow-up passes.
type contactEngine struct {
	dispatcher shared.Dispatcher
	policy     outreach.Policy
	clock      clock.Clock
	logger     *slog.Logger
}

// attempt performs the next contact action for target within tx. Returns
// true when an attempt was dispatched and recorded. A dispatch failure
// leaves the target untouched apart from a failed Interaction record, so
// the same attempt is retried on the next pass tick.
func (e *contactEngine) attempt(
	ctx context.Context,
	tx shared.Tx,
	target *outreach.Target,
	lst *listing.Listing,
) (bool, error) {
	now := e.clock.Now()
	decision := target.NextAction(now, e.policy)
	if !decision.Eligible {
		return false, nil
	}

	result, err := e.dispatcher.Send(ctx, target, lst, decision.Kind)
	if err != nil {
		return false, err
	}

	if !result.Success {
		rec := interaction.NewAttempt(
			lst.ID(), target.ID(), decision.Kind,
			result.Subject, result.Content,
			interaction.OutcomeFailed, "",
			map[string]string{"reason": result.Reason},
			e.clock.Now(),
		)
		if cerr := tx.Interactions().Create(ctx, rec); cerr != nil {
			return false, cerr
		}
		e.logger.Warn("dispatch failed, attempt not consumed",
			"target_id", target.ID(), "kind", string(decision.Kind), "reason", result.Reason)
		return false, nil
	}

	expected := target.AttemptCount()
	if rerr := target.RecordAttempt(e.clock.Now(), e.policy); rerr != nil {
		return false, rerr
	}
	if rerr := tx.Outreach().RecordAttempt(ctx, target, expected); rerr != nil {
		return false, rerr
	}

	rec := interaction.NewAttempt(
		lst.ID(), target.ID(), decision.Kind,
		result.Subject, result.Content,
		interaction.OutcomeSent, result.CorrelationID,
		result.Metadata,
		e.clock.Now(),
	)
	if cerr := tx.Interactions().Create(ctx, rec); cerr != nil {
		return false, cerr
	}

	if merr := tx.Listings().MarkContacted(ctx, lst.ID()); merr != nil {
		return false, merr
	}

	e.logger.Info("contact attempt dispatched",
		"target_id", target.ID(),
		"attempt", target.AttemptCount(),
		"kind", string(decision.Kind),
		"state", target.State().String(),
		"correlation_id", result.CorrelationID)
	return true, nil
}
