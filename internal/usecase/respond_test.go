//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"rental-hunter/internal/domain/interaction"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/usecase"
	"rental-hunter/tests/common/builder"
	"rental-hunter/tests/common/memstore"
)

type ResponseUseCaseSuite struct {
	suite.Suite
	store *memstore.Store
	clk   *clock.MockClock
	uc    usecase.ResponseCommands
}

func TestResponseUseCaseSuite(t *testing.T) {
	suite.Run(t, new(ResponseUseCaseSuite))
}

func (s *ResponseUseCaseSuite) SetupTest() {
	s.store = memstore.New()
	s.clk = clock.NewMockClock(time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC))
	s.uc = usecase.NewResponseUseCase(s.store, s.clk)
}

func (s *ResponseUseCaseSuite) seedTargetWithInteraction(correlationID string) *outreach.Target {
	target := builder.NewTargetBuilder().BuildDomain()
	s.Require().NoError(target.RecordAttempt(s.clk.Now().Add(-2*time.Hour), outreach.Policy{
		MaxAttempts:   3,
		FollowUpDelay: 24 * time.Hour,
	}))
	s.store.AddTarget(target)

	rec := interaction.NewAttempt(
		target.ListingID(), target.ID(), outreach.AttemptInitialEmail,
		"Demande de visite", "Bonjour",
		interaction.OutcomeSent, correlationID, nil,
		s.clk.Now().Add(-2*time.Hour),
	)
	s.store.Interactions = append(s.store.Interactions, rec)
	return target
}

func (s *ResponseUseCaseSuite) TestMarkResponded() {
	target := s.seedTargetWithInteraction("msg-100")

	s.Require().NoError(s.uc.MarkResponded(context.Background(), target.ID()))

	stored := s.store.Targets[target.ID()]
	s.True(stored.Responded())
	s.Equal(outreach.StateResponded, stored.State())
	s.Require().NotNil(stored.RespondedAt())
	s.Equal(s.clk.Now(), *stored.RespondedAt())
}

func (s *ResponseUseCaseSuite) TestMarkRespondedUnknownTarget() {
	err := s.uc.MarkResponded(context.Background(), uuid.New())
	s.True(usecase.IsNotFound(err))
}

func (s *ResponseUseCaseSuite) TestRecordResponseByCorrelation() {
	target := s.seedTargetWithInteraction("msg-101")
	at := s.clk.Now().Add(-10 * time.Minute)

	s.Require().NoError(s.uc.RecordResponseByCorrelation(context.Background(), "msg-101", at))

	stored := s.store.Targets[target.ID()]
	s.True(stored.Responded())
	s.Require().NotNil(stored.RespondedAt())
	s.Equal(at, *stored.RespondedAt())

	recs := s.store.InteractionsFor(target.ID())
	s.Require().Len(recs, 1)
	s.Equal(interaction.OutcomeResponded, recs[0].Outcome)
	s.Require().NotNil(recs[0].RespondedAt)
	s.Equal(at, *recs[0].RespondedAt)
}

func (s *ResponseUseCaseSuite) TestDuplicateResponseIsTolerated() {
	target := s.seedTargetWithInteraction("msg-102")
	first := s.clk.Now().Add(-10 * time.Minute)

	s.Require().NoError(s.uc.RecordResponseByCorrelation(context.Background(), "msg-102", first))
	// Channels redeliver webhooks; the second confirmation must be a no-op,
	// not an error, and the original response timestamp must survive.
	s.Require().NoError(s.uc.RecordResponseByCorrelation(context.Background(), "msg-102", s.clk.Now()))

	stored := s.store.Targets[target.ID()]
	s.Require().NotNil(stored.RespondedAt())
	s.Equal(first, *stored.RespondedAt())
}

func (s *ResponseUseCaseSuite) TestUnknownCorrelationIsNotFound() {
	err := s.uc.RecordResponseByCorrelation(context.Background(), "no-such-key", s.clk.Now())
	s.True(usecase.IsNotFound(err))
}

func (s *ResponseUseCaseSuite) TestRecordDeliveryByCorrelation() {
	target := s.seedTargetWithInteraction("msg-103")
	at := s.clk.Now().Add(-5 * time.Minute)

	s.Require().NoError(s.uc.RecordDeliveryByCorrelation(context.Background(), "msg-103", at))

	recs := s.store.InteractionsFor(target.ID())
	s.Require().Len(recs, 1)
	s.Equal(interaction.OutcomeDelivered, recs[0].Outcome)
	s.Require().NotNil(recs[0].DeliveredAt)
	s.Equal(at, *recs[0].DeliveredAt)

	// A delivery receipt is not a response.
	s.False(s.store.Targets[target.ID()].Responded())
}
