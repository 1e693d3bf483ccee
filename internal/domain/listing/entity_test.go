//go:build unit

package listing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/tests/common/builder"
)

func TestFromRaw_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*builder.ListingBuilder)
		wantErr error
	}{
		{"missing title", func(b *builder.ListingBuilder) { b.Title = "  " }, listing.ErrMissingTitle},
		{"missing city", func(b *builder.ListingBuilder) { b.City = "" }, listing.ErrMissingCity},
		{"missing url", func(b *builder.ListingBuilder) { b.URL = "" }, listing.ErrMissingURL},
		{"missing source", func(b *builder.ListingBuilder) { b.SourceSite = "" }, listing.ErrMissingSource},
		{"unparseable price", func(b *builder.ListingBuilder) { b.PriceText = "sur demande" }, listing.ErrInvalidPrice},
		{"zero price", func(b *builder.ListingBuilder) { b.PriceText = "0 €" }, listing.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.NewListingBuilder().With(tt.mutate).BuildDomain()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFromRaw_NormalizesFields(t *testing.T) {
	seen := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	l, err := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.Title = "  Appartement T2  "
		b.SeenAt = seen
	}).BuildDomain()
	require.NoError(t, err)

	assert.Equal(t, "Appartement T2", l.Title())
	assert.InDelta(t, 920, l.Price(), 1e-9)
	require.NotNil(t, l.Rooms())
	assert.Equal(t, 2, *l.Rooms())
	require.NotNil(t, l.Area())
	assert.InDelta(t, 45, *l.Area(), 1e-9)
	assert.Equal(t, listing.StatusNew, l.Status())
	assert.Equal(t, seen, l.FirstSeen())
	assert.Equal(t, seen, l.LastSeen())
	assert.True(t, l.StillAvailable())
	assert.True(t, l.IsCanonical())
}

func TestMarkDuplicateOf(t *testing.T) {
	canonical := builder.NewListingBuilder().MustBuildDomain()
	dup := builder.NewListingBuilder().MustBuildDomain()

	require.NoError(t, dup.MarkDuplicateOf(canonical, 0.92))
	assert.False(t, dup.IsCanonical())
	require.NotNil(t, dup.DuplicateOf())
	assert.Equal(t, canonical.ID(), *dup.DuplicateOf())
	require.NotNil(t, dup.SimilarityScore())
	assert.InDelta(t, 0.92, *dup.SimilarityScore(), 1e-9)
	assert.Equal(t, listing.StatusDuplicate, dup.Status())

	// A duplicate is never a valid canonical reference.
	other := builder.NewListingBuilder().MustBuildDomain()
	assert.ErrorIs(t, other.MarkDuplicateOf(dup, 0.9), listing.ErrNotCanonical)
}

func TestRefreshAndStatusTransitions(t *testing.T) {
	l := builder.NewListingBuilder().MustBuildDomain()

	l.MarkUnavailable()
	assert.False(t, l.StillAvailable())
	assert.Equal(t, listing.StatusUnavailable, l.Status())

	later := l.LastSeen().Add(48 * time.Hour)
	l.Refresh(later)
	assert.True(t, l.StillAvailable())
	assert.Equal(t, later, l.LastSeen())

	fresh := builder.NewListingBuilder().MustBuildDomain()
	fresh.MarkContacted()
	assert.Equal(t, listing.StatusContacted, fresh.Status())

	// Contact marking must not resurrect a non-new status.
	l.MarkContacted()
	assert.Equal(t, listing.StatusUnavailable, l.Status())
}
