//go:build unit

// Package memstore is an in-memory UnitOfWork for pass-level unit tests.
// It mirrors the repository contracts closely enough to exercise the
// eligibility predicates and the compare-and-update attempt guard without a
// database. Not safe for concurrent use across tests; build a fresh Store
// per test.
package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"rental-hunter/internal/domain/interaction"
	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/pkg/errs"
	"rental-hunter/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	Listings     map[uuid.UUID]*listing.Listing
	Targets      map[uuid.UUID]*outreach.Target
	Interactions []*interaction.Interaction
	JobRuns      map[uuid.UUID]*jobrun.JobRun

	// insertion order for deterministic iteration
	listingOrder []uuid.UUID
	targetOrder  []uuid.UUID

	// FailNext makes the next Within call return this error once.
	FailNext error
}

func New() *Store {
	return &Store{
		Listings: make(map[uuid.UUID]*listing.Listing),
		Targets:  make(map[uuid.UUID]*outreach.Target),
		JobRuns:  make(map[uuid.UUID]*jobrun.JobRun),
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if s.FailNext != nil {
		err := s.FailNext
		s.FailNext = nil
		return err
	}
	return fn(ctx, &memTx{store: s})
}

// Seed helpers

func (s *Store) AddListing(l *listing.Listing) {
	s.Listings[l.ID()] = l
	s.listingOrder = append(s.listingOrder, l.ID())
}

func (s *Store) AddTarget(t *outreach.Target) {
	s.Targets[t.ID()] = t
	s.targetOrder = append(s.targetOrder, t.ID())
}

func (s *Store) InteractionsFor(targetID uuid.UUID) []*interaction.Interaction {
	var out []*interaction.Interaction
	for _, rec := range s.Interactions {
		if rec.TargetID == targetID {
			out = append(out, rec)
		}
	}
	return out
}

type memTx struct {
	store *Store
}

func (t *memTx) Listings() shared.ListingRepository         { return &listingRepo{store: t.store} }
func (t *memTx) Outreach() shared.OutreachRepository        { return &outreachRepo{store: t.store} }
func (t *memTx) Interactions() shared.InteractionRepository { return &interactionRepo{store: t.store} }
func (t *memTx) JobRuns() shared.JobRunRepository           { return &jobRunRepo{store: t.store} }

// ----- listings -----

type listingRepo struct {
	store *Store
}

func (r *listingRepo) Create(_ context.Context, l *listing.Listing) error {
	for _, existing := range r.store.Listings {
		if existing.SourceURL() == l.SourceURL() {
			return errs.ErrDuplicateListing
		}
	}
	r.store.AddListing(l)
	return nil
}

func (r *listingRepo) FindByID(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	l, ok := r.store.Listings[id]
	if !ok {
		return nil, errs.ErrListingNotFound
	}
	return l, nil
}

func (r *listingRepo) FindBySourceURL(_ context.Context, url string) (*listing.Listing, error) {
	for _, id := range r.store.listingOrder {
		if l := r.store.Listings[id]; l != nil && l.SourceURL() == url {
			return l, nil
		}
	}
	return nil, errs.ErrListingNotFound
}

func (r *listingRepo) FindCandidates(_ context.Context, city string, minPrice, maxPrice float64) ([]*listing.Listing, error) {
	var out []*listing.Listing
	for _, id := range r.store.listingOrder {
		l := r.store.Listings[id]
		if l == nil || !l.IsCanonical() || !l.StillAvailable() {
			continue
		}
		if !strings.Contains(strings.ToLower(l.City()), strings.ToLower(city)) {
			continue
		}
		if l.Price() < minPrice || l.Price() > maxPrice {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *listingRepo) Refresh(_ context.Context, id uuid.UUID, now time.Time) error {
	l, ok := r.store.Listings[id]
	if !ok {
		return errs.ErrListingNotFound
	}
	l.Refresh(now)
	return nil
}

func (r *listingRepo) MarkContacted(_ context.Context, id uuid.UUID) error {
	l, ok := r.store.Listings[id]
	if !ok {
		return errs.ErrListingNotFound
	}
	l.MarkContacted()
	return nil
}

func (r *listingRepo) ListUncontacted(_ context.Context, limit int) ([]*listing.Listing, error) {
	var out []*listing.Listing
	for _, id := range r.store.listingOrder {
		l := r.store.Listings[id]
		if l == nil || !l.IsCanonical() || !l.StillAvailable() || l.Status() != listing.StatusNew {
			continue
		}
		out = append(out, l)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *listingRepo) ResolveCanonical(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	current := id
	for range 10 {
		l, ok := r.store.Listings[current]
		if !ok {
			return uuid.Nil, errs.ErrListingNotFound
		}
		if l.DuplicateOf() == nil {
			return current, nil
		}
		current = *l.DuplicateOf()
	}
	return uuid.Nil, errs.ErrListingNotFound
}

func (r *listingRepo) MarkStaleUnavailable(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, l := range r.store.Listings {
		if l.StillAvailable() && l.LastSeen().Before(cutoff) {
			l.MarkUnavailable()
			n++
		}
	}
	return n, nil
}

// ----- outreach targets -----

type outreachRepo struct {
	store *Store
}

func (r *outreachRepo) Create(_ context.Context, t *outreach.Target) error {
	for _, existing := range r.store.Targets {
		if existing.ListingID() == t.ListingID() {
			return errs.ErrDuplicateListing
		}
	}
	r.store.AddTarget(t)
	return nil
}

func (r *outreachRepo) FindByID(_ context.Context, id uuid.UUID) (*outreach.Target, error) {
	t, ok := r.store.Targets[id]
	if !ok {
		return nil, errs.ErrTargetNotFound
	}
	return cloneTarget(t), nil
}

func (r *outreachRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*outreach.Target, error) {
	return r.FindByID(ctx, id)
}

func (r *outreachRepo) FindByListingID(_ context.Context, listingID uuid.UUID) (*outreach.Target, error) {
	for _, id := range r.store.targetOrder {
		if t := r.store.Targets[id]; t != nil && t.ListingID() == listingID {
			return cloneTarget(t), nil
		}
	}
	return nil, errs.ErrTargetNotFound
}

func (r *outreachRepo) FindEligibleIDs(_ context.Context, now time.Time, policy outreach.Policy) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, id := range r.store.targetOrder {
		t := r.store.Targets[id]
		if t == nil {
			continue
		}
		if decision := t.NextAction(now, policy); decision.Eligible {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func (r *outreachRepo) RecordAttempt(_ context.Context, t *outreach.Target, expectedAttempts int) error {
	stored, ok := r.store.Targets[t.ID()]
	if !ok {
		return errs.ErrTargetNotFound
	}
	if stored.AttemptCount() != expectedAttempts || stored.Responded() {
		return errs.ErrAttemptConflict
	}
	r.store.Targets[t.ID()] = cloneTarget(t)
	return nil
}

func (r *outreachRepo) MarkResponded(_ context.Context, t *outreach.Target) error {
	if _, ok := r.store.Targets[t.ID()]; !ok {
		return errs.ErrTargetNotFound
	}
	r.store.Targets[t.ID()] = cloneTarget(t)
	return nil
}

func cloneTarget(t *outreach.Target) *outreach.Target {
	clone, err := outreach.ReconstructTarget(
		t.ID(), t.ListingID(),
		t.Name(), t.AgencyName(), t.Email(), t.Phone(),
		t.State(), t.AttemptCount(),
		t.LastAttemptAt(), t.NextAttemptAt(),
		t.Responded(), t.RespondedAt(),
		t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return clone
}

// ----- interactions -----

type interactionRepo struct {
	store *Store
}

func (r *interactionRepo) Create(_ context.Context, rec *interaction.Interaction) error {
	r.store.Interactions = append(r.store.Interactions, rec)
	return nil
}

func (r *interactionRepo) AttachDelivery(_ context.Context, correlationID string, at time.Time) error {
	for _, rec := range r.store.Interactions {
		if rec.CorrelationID == correlationID && rec.DeliveredAt == nil {
			t := at
			rec.DeliveredAt = &t
			rec.Outcome = interaction.OutcomeDelivered
			return nil
		}
	}
	return errs.ErrUnknownCorrelation
}

func (r *interactionRepo) AttachResponse(_ context.Context, correlationID string, at time.Time) (uuid.UUID, error) {
	for _, rec := range r.store.Interactions {
		if rec.CorrelationID == correlationID {
			t := at
			rec.RespondedAt = &t
			rec.Outcome = interaction.OutcomeResponded
			return rec.TargetID, nil
		}
	}
	return uuid.Nil, errs.ErrUnknownCorrelation
}

// ----- job runs -----

type jobRunRepo struct {
	store *Store
}

func (r *jobRunRepo) Create(_ context.Context, run *jobrun.JobRun) error {
	r.store.JobRuns[run.ID] = run
	return nil
}

func (r *jobRunRepo) Finalize(_ context.Context, run *jobrun.JobRun) error {
	if _, ok := r.store.JobRuns[run.ID]; !ok {
		return errs.ErrJobRunNotFound
	}
	r.store.JobRuns[run.ID] = run
	return nil
}

func (r *jobRunRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, run := range r.store.JobRuns {
		if run.StartedAt.Before(cutoff) {
			delete(r.store.JobRuns, id)
			n++
		}
	}
	return n, nil
}
