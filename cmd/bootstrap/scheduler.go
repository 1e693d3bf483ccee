package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/scheduler"
	"rental-hunter/internal/usecase"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewScheduler,
	),
	fx.Invoke(
		runScheduler,
	),
)

func NewScheduler(
	cfg config.Config,
	clk clock.Clock,
	recorder *usecase.JobRunRecorder,
	logger *slog.Logger,
	collection *usecase.CollectionPass,
	initiation *usecase.InitiationPass,
	followUp *usecase.FollowUpPass,
	retention *usecase.RetentionPass,
) (*scheduler.Scheduler, error) {
	s := scheduler.New(clk, recorder, logger)

	entries := []struct {
		spec  string
		grace time.Duration
		pass  scheduler.Pass
	}{
		{cfg.Scheduler.CollectionSpec, cfg.Scheduler.CollectionGrace, collection},
		{cfg.Scheduler.InitiationSpec, cfg.Scheduler.InitiationGrace, initiation},
		{cfg.Scheduler.FollowUpSpec, cfg.Scheduler.FollowUpGrace, followUp},
		{cfg.Scheduler.RetentionSpec, cfg.Scheduler.RetentionGrace, retention},
	}
	for _, e := range entries {
		if err := s.Register(e.spec, e.grace, e.pass); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func runScheduler(lc fx.Lifecycle, cfg config.Config, s *scheduler.Scheduler, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("scheduler disabled by configuration")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start(context.Background())
			logger.Info("scheduler started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Scheduler.ShutdownGrace)
			defer cancel()
			return s.Stop(stopCtx)
		},
	})
}
