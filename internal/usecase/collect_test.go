//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/usecase"
	"rental-hunter/internal/usecase/shared"
	"rental-hunter/tests/common/builder"
	"rental-hunter/tests/common/memstore"
	sharedmock "rental-hunter/tests/mock/shared"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type CollectionPassSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *memstore.Store
	collector *sharedmock.MockCollector
	clk       *clock.MockClock
	cfg       config.Config
}

func TestCollectionPassSuite(t *testing.T) {
	suite.Run(t, new(CollectionPassSuite))
}

func (s *CollectionPassSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.collector = sharedmock.NewMockCollector(s.ctrl)
	s.clk = clock.NewMockClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s.cfg = config.NewTestConfig()
}

func (s *CollectionPassSuite) newPass() *usecase.CollectionPass {
	classifier := listing.NewClassifier(listing.Thresholds{
		Address:     s.cfg.Dedup.AddressThreshold,
		Description: s.cfg.Dedup.DescriptionThreshold,
		PriceBand:   s.cfg.Dedup.PriceThreshold,
	})
	return usecase.NewCollectionPass(
		s.store, []shared.Collector{s.collector}, classifier, s.cfg, s.clk, discardLogger())
}

func (s *CollectionPassSuite) TestStoresNewListing() {
	raw := builder.NewListingBuilder().BuildRaw()
	s.collector.EXPECT().Name().Return("seloger").AnyTimes()
	s.collector.EXPECT().Collect(gomock.Any(), "Paris", gomock.Any()).Return([]listing.Raw{raw}, nil)

	counts, err := s.newPass().Run(context.Background())
	s.Require().NoError(err)
	s.Equal(1, counts.Found)
	s.Equal(1, counts.New)
	s.Zero(counts.Duplicates)
	s.Len(s.store.Listings, 1)

	stored, err := s.findBySourceURL(raw.URL)
	s.Require().NoError(err)
	s.True(stored.IsCanonical())
	s.Equal(listing.StatusNew, stored.Status())
}

func (s *CollectionPassSuite) TestRefreshesKnownListing() {
	seeded := builder.NewListingBuilder().MustBuildDomain()
	s.store.AddListing(seeded)
	s.clk.Set(seeded.LastSeen().Add(48 * time.Hour))

	raw := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.URL = seeded.SourceURL()
	}).BuildRaw()
	s.collector.EXPECT().Name().Return("seloger").AnyTimes()
	s.collector.EXPECT().Collect(gomock.Any(), "Paris", gomock.Any()).Return([]listing.Raw{raw}, nil)

	counts, err := s.newPass().Run(context.Background())
	s.Require().NoError(err)
	s.Equal(1, counts.Updated)
	s.Zero(counts.New)
	s.Len(s.store.Listings, 1)
	s.Equal(s.clk.Now(), seeded.LastSeen())
}

func (s *CollectionPassSuite) TestDetectsRepublishedListing() {
	canonical := builder.NewListingBuilder().MustBuildDomain()
	s.store.AddListing(canonical)

	// Same flat republished with an abbreviated address and a slightly
	// different asking price on another URL.
	raw := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.Address = "12 r Rivoli"
		b.PriceText = "935 €"
		b.URL = "https://www.seloger.com/annonces/republished"
	}).BuildRaw()
	s.collector.EXPECT().Name().Return("seloger").AnyTimes()
	s.collector.EXPECT().Collect(gomock.Any(), "Paris", gomock.Any()).Return([]listing.Raw{raw}, nil)

	counts, err := s.newPass().Run(context.Background())
	s.Require().NoError(err)
	s.Equal(1, counts.Duplicates)
	s.Zero(counts.New)
	s.Len(s.store.Listings, 2)

	dup, err := s.findBySourceURL(raw.URL)
	s.Require().NoError(err)
	s.False(dup.IsCanonical())
	s.Require().NotNil(dup.DuplicateOf())
	s.Equal(canonical.ID(), *dup.DuplicateOf())
	s.Require().NotNil(dup.SimilarityScore())
	s.Greater(*dup.SimilarityScore(), s.cfg.Dedup.AddressThreshold)
}

func (s *CollectionPassSuite) TestSkipsUnusableRaw() {
	raw := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.PriceText = "prix sur demande"
	}).BuildRaw()
	s.collector.EXPECT().Name().Return("seloger").AnyTimes()
	s.collector.EXPECT().Collect(gomock.Any(), "Paris", gomock.Any()).Return([]listing.Raw{raw}, nil)

	counts, err := s.newPass().Run(context.Background())
	s.Require().NoError(err)
	s.Equal(1, counts.Skipped)
	s.Zero(counts.Errors)
	s.Empty(s.store.Listings)
}

func (s *CollectionPassSuite) TestCollectorFailureDoesNotAbortRun() {
	s.collector.EXPECT().Name().Return("seloger").AnyTimes()
	s.collector.EXPECT().Collect(gomock.Any(), "Paris", gomock.Any()).
		Return(nil, errors.New("upstream returned 503"))

	counts, err := s.newPass().Run(context.Background())
	s.Require().NoError(err)
	s.Equal(1, counts.Errors)
}

func (s *CollectionPassSuite) TestDisabledSourceIsSkipped() {
	s.collector.EXPECT().Name().Return("leboncoin").AnyTimes()
	// No Collect expectation: a disabled source must never be scanned.

	counts, err := s.newPass().Run(context.Background())
	s.Require().NoError(err)
	s.Zero(counts.Found)
}

func (s *CollectionPassSuite) findBySourceURL(url string) (*listing.Listing, error) {
	var found *listing.Listing
	err := s.store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Listings().FindBySourceURL(ctx, url)
		if err != nil {
			return err
		}
		found = l
		return nil
	})
	return found, err
}
