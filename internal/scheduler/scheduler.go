// Package scheduler drives the timed background passes. Each registered
// pass fires on its own cron trigger with at most one concurrently running
// instance of its kind: a trigger that fires while the previous run is
// still going is dropped, not queued. A missed fire time is still executed
// inside the pass's misfire grace period and skipped beyond it.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// Pass is one unit of scheduled work.
type Pass interface {
	Kind() jobrun.Kind
	Run(ctx context.Context) (jobrun.Counts, error)
}

// Recorder persists JobRun bookkeeping around each pass execution.
type Recorder interface {
	Begin(ctx context.Context, run *jobrun.JobRun) error
	Finish(ctx context.Context, run *jobrun.JobRun) error
}

type entry struct {
	pass     Pass
	schedule cron.Schedule
	grace    time.Duration
	spec     string

	running atomic.Bool
	mu      sync.Mutex // guards next
	next    time.Time
}

func (e *entry) nextFire() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next
}

func (e *entry) setNext(t time.Time) {
	e.mu.Lock()
	e.next = t
	e.mu.Unlock()
}

// EntryStatus is a point-in-time snapshot of one registered pass.
type EntryStatus struct {
	Kind    string    `json:"kind"`
	Spec    string    `json:"spec"`
	NextRun time.Time `json:"next_run"`
	Running bool      `json:"running"`
}

var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Scheduler owns the registered entries and the timer loop. It is an
// explicitly constructed context handed to the workers, never a process
// global, so tests drive it with a mock clock and fake collaborators.
type Scheduler struct {
	clock    clock.Clock
	logger   *slog.Logger
	recorder Recorder

	mu      sync.Mutex
	entries []*entry

	stopped atomic.Bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func New(clk clock.Clock, recorder Recorder, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		clock:    clk,
		logger:   logger,
		recorder: recorder,
		stop:     make(chan struct{}),
	}
}

// Register adds a pass with a standard 5-field cron spec and a misfire
// grace period.
func (s *Scheduler) Register(spec string, grace time.Duration, pass Pass) error {
	schedule, err := cronParser.Parse(spec)
	if err != nil {
		return err
	}
	e := &entry{
		pass:     pass,
		schedule: schedule,
		grace:    grace,
		spec:     spec,
		next:     schedule.Next(s.clock.Now()),
	}
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	s.logger.Info("pass scheduled",
		"kind", pass.Kind().String(), "spec", spec, "next_run", e.next)
	return nil
}

// Start launches the timer loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(ctx)
	}()
}

// Stop stops accepting new triggers and waits for in-flight passes to
// finish their current unit of work, up to the context deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stop)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	for {
		wait := s.untilNextFire()
		timer := time.NewTimer(wait)

		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.RunDue(ctx, s.clock.Now())
		}
	}
}

// RunDue fires every entry whose scheduled time has arrived. Exposed so
// operators (and tests) can force an evaluation tick.
func (s *Scheduler) RunDue(ctx context.Context, now time.Time) {
	if s.stopped.Load() {
		return
	}

	s.mu.Lock()
	entries := make([]*entry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	for _, e := range entries {
		fireAt := e.nextFire()
		if fireAt.After(now) {
			continue
		}
		e.setNext(e.schedule.Next(now))

		late := now.Sub(fireAt)
		if late > e.grace {
			s.logger.Warn("misfire beyond grace period, run skipped",
				"kind", e.pass.Kind().String(),
				"scheduled", fireAt, "late", late.String())
			continue
		}

		if !e.running.CompareAndSwap(false, true) {
			s.logger.Warn("previous run still active, trigger dropped",
				"kind", e.pass.Kind().String())
			continue
		}

		s.wg.Add(1)
		go func(e *entry) {
			defer s.wg.Done()
			defer e.running.Store(false)
			s.runPass(ctx, e)
		}(e)
	}
}

func (s *Scheduler) runPass(ctx context.Context, e *entry) {
	kind := e.pass.Kind()
	run := jobrun.Start(kind, s.clock.Now())

	if err := s.recorder.Begin(ctx, run); err != nil {
		s.logger.Error("failed to record job start",
			"kind", kind.String(), "error", err.Error())
		// Bookkeeping must not block the pass itself.
	}

	s.logger.Info("pass started", "kind", kind.String(), "run_id", run.ID)

	counts, err := e.pass.Run(ctx)
	if err != nil {
		run.Fail(counts, err, s.clock.Now())
		s.logger.Error("pass failed",
			"kind", kind.String(), "run_id", run.ID, "error", err.Error(),
			"stack", errs.ExtractStackLines(err, 8))
	} else {
		run.Complete(counts, s.clock.Now())
		s.logger.Info("pass completed",
			"kind", kind.String(), "run_id", run.ID,
			"found", counts.Found, "new", counts.New,
			"duplicates", counts.Duplicates, "contacted", counts.Contacted,
			"errors", counts.Errors)
	}

	if err := s.recorder.Finish(ctx, run); err != nil {
		s.logger.Error("failed to finalize job run",
			"kind", kind.String(), "run_id", run.ID, "error", err.Error())
	}
}

// Snapshot reports the registered entries for the ops surface.
func (s *Scheduler) Snapshot() []EntryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]EntryStatus, 0, len(s.entries))
	for _, e := range s.entries {
		statuses = append(statuses, EntryStatus{
			Kind:    e.pass.Kind().String(),
			Spec:    e.spec,
			NextRun: e.nextFire(),
			Running: e.running.Load(),
		})
	}
	return statuses
}

func (s *Scheduler) untilNextFire() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) == 0 {
		return time.Hour
	}
	now := s.clock.Now()
	soonest := s.entries[0].nextFire()
	for _, e := range s.entries[1:] {
		if n := e.nextFire(); n.Before(soonest) {
			soonest = n
		}
	}
	wait := soonest.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return wait
}
