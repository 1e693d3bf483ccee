package usecase

import (
	"context"
	"time"

	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/usecase/shared"

	"github.com/google/uuid"
)

// ResponseCommands handles out-of-band channel events: delivery receipts
// and inbound responses. A response flips the target to responded so the
// next eligibility check skips it.
type ResponseCommands interface {
	MarkResponded(ctx context.Context, targetID uuid.UUID) error
	// RecordResponseByCorrelation attaches a response to the interaction
	// matched by the channel correlation key and marks its target.
	RecordResponseByCorrelation(ctx context.Context, correlationID string, at time.Time) error
	RecordDeliveryByCorrelation(ctx context.Context, correlationID string, at time.Time) error
}

type responseUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewResponseUseCase(uow shared.UnitOfWork, clk clock.Clock) ResponseCommands {
	return &responseUseCaseImpl{uow: uow, clock: clk}
}

func (uc *responseUseCaseImpl) MarkResponded(ctx context.Context, targetID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := tx.Outreach().FindByIDForUpdate(ctx, targetID)
		if err != nil {
			return err
		}
		if err := target.MarkResponded(uc.clock.Now()); err != nil {
			return err
		}
		return tx.Outreach().MarkResponded(ctx, target)
	})
}

func (uc *responseUseCaseImpl) RecordResponseByCorrelation(ctx context.Context, correlationID string, at time.Time) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		targetID, err := tx.Interactions().AttachResponse(ctx, correlationID, at)
		if err != nil {
			return err
		}
		target, err := tx.Outreach().FindByIDForUpdate(ctx, targetID)
		if err != nil {
			return err
		}
		if err := target.MarkResponded(at); err != nil {
			// A second confirmation for the same target is not an event
			// worth failing the webhook over.
			return nil
		}
		return tx.Outreach().MarkResponded(ctx, target)
	})
}

func (uc *responseUseCaseImpl) RecordDeliveryByCorrelation(ctx context.Context, correlationID string, at time.Time) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Interactions().AttachDelivery(ctx, correlationID, at)
	})
}
