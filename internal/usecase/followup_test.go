//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/usecase"
	"rental-hunter/internal/usecase/shared"
	"rental-hunter/tests/common/builder"
	"rental-hunter/tests/common/memstore"
	sharedmock "rental-hunter/tests/mock/shared"
)

type FollowUpPassSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	store      *memstore.Store
	dispatcher *sharedmock.MockDispatcher
	clk        *clock.MockClock
	policy     outreach.Policy
	pass       *usecase.FollowUpPass
}

func TestFollowUpPassSuite(t *testing.T) {
	suite.Run(t, new(FollowUpPassSuite))
}

func (s *FollowUpPassSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.dispatcher = sharedmock.NewMockDispatcher(s.ctrl)
	s.clk = clock.NewMockClock(time.Date(2025, 3, 11, 11, 0, 0, 0, time.UTC))
	cfg := config.NewTestConfig()
	s.policy = outreach.Policy{
		MaxAttempts:   cfg.Outreach.MaxAttempts,
		FollowUpDelay: cfg.Outreach.FollowUpDelay,
	}
	s.pass = usecase.NewFollowUpPass(s.store, s.dispatcher, cfg, s.clk, discardLogger())
}

// seedContacted stores a listing with one attempt already dispatched at the
// given instant.
func (s *FollowUpPassSuite) seedContacted(attemptAt time.Time) (*listing.Listing, *outreach.Target) {
	lst := builder.NewListingBuilder().MustBuildDomain()
	lst.MarkContacted()
	s.store.AddListing(lst)

	target := builder.NewTargetBuilder().With(func(b *builder.TargetBuilder) {
		b.ListingID = lst.ID()
	}).BuildDomain()
	s.Require().NoError(target.RecordAttempt(attemptAt, s.policy))
	s.store.AddTarget(target)
	return lst, target
}

func (s *FollowUpPassSuite) TestEscalatesToPhoneCall() {
	_, target := s.seedContacted(s.clk.Now().Add(-25 * time.Hour))

	s.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), outreach.AttemptPhoneCall).
		Return(shared.DispatchResult{Success: true, CorrelationID: "call-001"}, nil)

	counts, err := s.pass.Run(context.Background())
	s.Require().NoError(err)
	s.Equal(1, counts.Contacted)

	stored := s.store.Targets[target.ID()]
	s.Equal(2, stored.AttemptCount())
	s.Equal(outreach.StateAwaitingResponse, stored.State())
}

func (s *FollowUpPassSuite) TestTooEarlyIsNotSelected() {
	s.seedContacted(s.clk.Now().Add(-23 * time.Hour))

	counts, err := s.pass.Run(context.Background())
	s.Require().NoError(err)
	s.Zero(counts.Contacted)
	s.Zero(counts.Skipped)
}

func (s *FollowUpPassSuite) TestRespondedTargetIsNotSelected() {
	_, target := s.seedContacted(s.clk.Now().Add(-48 * time.Hour))
	s.Require().NoError(target.MarkResponded(s.clk.Now().Add(-time.Hour)))
	s.store.Targets[target.ID()] = target

	counts, err := s.pass.Run(context.Background())
	s.Require().NoError(err)
	s.Zero(counts.Contacted)
}

func (s *FollowUpPassSuite) TestConcurrentAttemptSurfacesAsConflict() {
	_, target := s.seedContacted(s.clk.Now().Add(-25 * time.Hour))

	// Another worker records the same attempt between our dispatch and our
	// write; the compare-and-update must refuse the stale transition.
	s.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), outreach.AttemptPhoneCall).
		DoAndReturn(func(context.Context, *outreach.Target, *listing.Listing, outreach.AttemptKind) (shared.DispatchResult, error) {
			concurrent := s.store.Targets[target.ID()]
			s.Require().NoError(concurrent.RecordAttempt(s.clk.Now(), s.policy))
			return shared.DispatchResult{Success: true, CorrelationID: "call-002"}, nil
		})

	counts, err := s.pass.Run(context.Background())
	s.Require().NoError(err)
	s.Zero(counts.Contacted)
	s.Equal(1, counts.Errors)
	// The concurrent writer's state stands.
	s.Equal(2, s.store.Targets[target.ID()].AttemptCount())
}

func (s *FollowUpPassSuite) TestExhaustsAfterFinalAttempt() {
	_, target := s.seedContacted(s.clk.Now().Add(-50 * time.Hour))
	stored := s.store.Targets[target.ID()]
	s.Require().NoError(stored.RecordAttempt(s.clk.Now().Add(-25*time.Hour), s.policy))

	s.dispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), outreach.AttemptUrgentEmail).
		Return(shared.DispatchResult{Success: true, CorrelationID: "msg-010"}, nil)

	counts, err := s.pass.Run(context.Background())
	s.Require().NoError(err)
	s.Equal(1, counts.Contacted)

	final := s.store.Targets[target.ID()]
	s.Equal(3, final.AttemptCount())
	s.Equal(outreach.StateExhausted, final.State())
	s.Nil(final.NextAttemptAt())
}
