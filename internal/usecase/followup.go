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

// FollowUpPass escalates every eligible outreach target one step along the
// channel ladder. The eligibility predicate is re-evaluated under a row
// lock inside each target's transaction, which is what keeps two
// overlapping passes from double-dispatching the same attempt.
type FollowUpPass struct {
	uow    shared.UnitOfWork
	engine contactEngine
	policy outreach.Policy
	clock  clock.Clock
	logger *slog.Logger
}

func NewFollowUpPass(
	uow shared.UnitOfWork,
	dispatcher shared.Dispatcher,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *FollowUpPass {
	policy := outreach.Policy{
		MaxAttempts:   cfg.Outreach.MaxAttempts,
		FollowUpDelay: cfg.Outreach.FollowUpDelay,
	}
	return &FollowUpPass{
		uow: uow,
		engine: contactEngine{
			dispatcher: dispatcher,
			policy:     policy,
			clock:      clk,
			logger:     logger,
		},
		policy: policy,
		clock:  clk,
		logger: logger,
	}
}

func (p *FollowUpPass) Kind() jobrun.Kind { return jobrun.KindFollowUp }

func (p *FollowUpPass) Run(ctx context.Context) (jobrun.Counts, error) {
	var counts jobrun.Counts

	var eligible []uuid.UUID
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, ferr := tx.Outreach().FindEligibleIDs(ctx, p.clock.Now(), p.policy)
		if ferr != nil {
			return ferr
		}
		eligible = ids
		return nil
	})
	if err != nil {
		return counts, err
	}

	for _, id := range eligible {
		if uerr := p.followUpOne(ctx, id, &counts); uerr != nil {
			p.logger.Error("follow-up failed", "target_id", id, "error", uerr.Error())
			counts.Errors++
		}
	}

	return counts, nil
}

func (p *FollowUpPass) followUpOne(ctx context.Context, id uuid.UUID, counts *jobrun.Counts) error {
	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Lock the row and re-evaluate: the candidate query ran outside
		// this transaction and a concurrent pass may already have used the
		// attempt.
		target, err := tx.Outreach().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		lst, err := tx.Listings().FindByID(ctx, target.ListingID())
		if err != nil {
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
