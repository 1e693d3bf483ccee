package usecase

import (
	"context"
	"log/slog"

	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/usecase/shared"

	"github.com/google/uuid"
)

// The initiation pass processes newly-distinct listings in slices of this
// size to bound a single pass run.
const initiationBatchSize = 200

// InitiationPass creates an outreach target for every canonical listing
// that has none yet and immediately dispatches the first contact attempt.
type InitiationPass struct {
	uow    shared.UnitOfWork
	engine contactEngine
	clock  clock.Clock
	logger *slog.Logger
}

func NewInitiationPass(
	uow shared.UnitOfWork,
	dispatcher shared.Dispatcher,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *InitiationPass {
	return &InitiationPass{
		uow: uow,
		engine: contactEngine{
			dispatcher: dispatcher,
			policy: outreach.Policy{
				MaxAttempts:   cfg.Outreach.MaxAttempts,
				FollowUpDelay: cfg.Outreach.FollowUpDelay,
			},
			clock:  clk,
			logger: logger,
		},
		clock:  clk,
		logger: logger,
	}
}

func (p *InitiationPass) Kind() jobrun.Kind { return jobrun.KindInitiation }

func (p *InitiationPass) Run(ctx context.Context) (jobrun.Counts, error) {
	var counts jobrun.Counts

	var pending []listingRef
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		listings, lerr := tx.Listings().ListUncontacted(ctx, initiationBatchSize)
		if lerr != nil {
			return lerr
		}
		pending = pending[:0]
		for _, l := range listings {
			pending = append(pending, listingRef{id: l.ID()})
		}
		return nil
	})
	if err != nil {
		return counts, err
	}

	for _, ref := range pending {
		if uerr := p.initiateOne(ctx, ref, &counts); uerr != nil {
			p.logger.Error("failed to initiate contact",
				"listing_id", ref.id, "error", uerr.Error())
			counts.Errors++
		}
	}

	return counts, nil
}

func (p *InitiationPass) initiateOne(ctx context.Context, ref listingRef, counts *jobrun.Counts) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lst, err := tx.Listings().FindByID(ctx, ref.id)
		if err != nil {
			return err
		}
		if !lst.IsCanonical() || !lst.StillAvailable() {
			counts.Skipped++
			return nil
		}

		target, err := tx.Outreach().FindByListingID(ctx, lst.ID())
		if IsNotFound(err) {
			// One target per canonical listing, created lazily on the
			// first initiation pass that sees the listing.
			target = outreach.NewTarget(lst.ID(), "", "", "", "", p.clock.Now())
			if cerr := tx.Outreach().Create(ctx, target); cerr != nil {
				return cerr
			}
		} else if err != nil {
			return err
		}

		sent, err := p.engine.attempt(ctx, tx, target, lst)
		if err != nil {
			return err
		}
		if sent {
			counts.Contacted++
		} else {
			counts.Skipped++
		}
		return nil
	})
}

type listingRef struct {
	id uuid.UUID
}
