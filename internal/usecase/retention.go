package usecase

import (
	"context"
	"log/slog"

	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/usecase/shared"
)

// RetentionPass flags listings that have not been re-confirmed within the
// staleness window as unavailable and purges job run records past their
// retention window. Listings are never hard-deleted.
type RetentionPass struct {
	uow             shared.UnitOfWork
	stalenessWindow config.SchedulerConfig
	clock           clock.Clock
	logger          *slog.Logger
}

func NewRetentionPass(uow shared.UnitOfWork, cfg config.Config, clk clock.Clock, logger *slog.Logger) *RetentionPass {
	return &RetentionPass{
		uow:             uow,
		stalenessWindow: cfg.Scheduler,
		clock:           clk,
		logger:          logger,
	}
}

func (p *RetentionPass) Kind() jobrun.Kind { return jobrun.KindRetention }

func (p *RetentionPass) Run(ctx context.Context) (jobrun.Counts, error) {
	var counts jobrun.Counts
	now := p.clock.Now()

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		stale, serr := tx.Listings().MarkStaleUnavailable(ctx, now.Add(-p.stalenessWindow.StalenessWindow))
		if serr != nil {
			return serr
		}
		counts.Updated = int(stale)

		purged, derr := tx.JobRuns().DeleteOlderThan(ctx, now.Add(-p.stalenessWindow.JobRunRetention))
		if derr != nil {
			return derr
		}
		counts.Purged = int(purged)
		return nil
	})
	if err != nil {
		return counts, err
	}

	p.logger.Info("retention pass completed",
		"marked_unavailable", counts.Updated, "job_runs_purged", counts.Purged)
	return counts, nil
}
