//go:build unit

package listing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/tests/common/builder"
)

var testThresholds = listing.Thresholds{
	Address:     0.85,
	Description: 0.75,
	PriceBand:   50,
}

// stubScorer returns canned scores keyed by the existing listing's address so
// the decision policy can be exercised independently of string similarity.
type stubScorer struct {
	addr map[string]float64
	desc map[string]float64
}

func (s stubScorer) Address(_, b string) float64     { return s.addr[b] }
func (s stubScorer) Description(_, b string) float64 { return s.desc[b] }

func buildListing(t *testing.T, mutate func(*builder.ListingBuilder)) *listing.Listing {
	t.Helper()
	b := builder.NewListingBuilder()
	if mutate != nil {
		b.With(mutate)
	}
	l, err := b.BuildDomain()
	require.NoError(t, err)
	return l
}

func TestClassify_AddressRule(t *testing.T) {
	cand := buildListing(t, nil)
	ex := buildListing(t, func(b *builder.ListingBuilder) {
		b.Address = "12 r Rivoli"
	})

	scorer := stubScorer{addr: map[string]float64{"12 r Rivoli": 0.9}}
	c := listing.NewClassifierWithScorer(scorer, testThresholds)

	verdict := c.Classify(cand, []*listing.Listing{ex})
	require.True(t, verdict.Duplicate)
	assert.Equal(t, ex.ID(), verdict.Canonical.ID())
	assert.InDelta(t, 0.9, verdict.Score, 1e-9)
}

func TestClassify_AddressAtThresholdIsNotEnough(t *testing.T) {
	cand := buildListing(t, func(b *builder.ListingBuilder) {
		// Different specs so the fallback rule cannot fire either.
		b.PriceText = "1800 €"
	})
	ex := buildListing(t, nil)

	scorer := stubScorer{addr: map[string]float64{ex.Address(): 0.85}}
	c := listing.NewClassifierWithScorer(scorer, testThresholds)

	verdict := c.Classify(cand, []*listing.Listing{ex})
	assert.False(t, verdict.Duplicate)
}

func TestClassify_DescriptionRule(t *testing.T) {
	cand := buildListing(t, func(b *builder.ListingBuilder) {
		// Price outside the band keeps the spec fallback out of play.
		b.PriceText = "1800 €"
	})
	ex := buildListing(t, nil)

	scorer := stubScorer{
		addr: map[string]float64{ex.Address(): 0.7},
		desc: map[string]float64{ex.Description(): 0.8},
	}
	c := listing.NewClassifierWithScorer(scorer, testThresholds)

	verdict := c.Classify(cand, []*listing.Listing{ex})
	require.True(t, verdict.Duplicate)
	assert.Equal(t, ex.ID(), verdict.Canonical.ID())
	assert.InDelta(t, 0.8, verdict.Score, 1e-9)
}

func TestClassify_DescriptionRuleNeedsLooseAddressMatch(t *testing.T) {
	cand := buildListing(t, func(b *builder.ListingBuilder) {
		b.PriceText = "1800 €"
	})
	ex := buildListing(t, nil)

	// Address below the description gate: a near-identical description alone
	// must not pair two listings across town.
	scorer := stubScorer{
		addr: map[string]float64{ex.Address(): 0.5},
		desc: map[string]float64{ex.Description(): 0.95},
	}
	c := listing.NewClassifierWithScorer(scorer, testThresholds)

	assert.False(t, c.Classify(cand, []*listing.Listing{ex}).Duplicate)
}

func TestClassify_TitleStandsInForMissingDescription(t *testing.T) {
	cand := buildListing(t, func(b *builder.ListingBuilder) {
		b.Description = ""
		b.PriceText = "1800 €"
	})
	ex := buildListing(t, func(b *builder.ListingBuilder) {
		b.Description = ""
	})

	scorer := stubScorer{
		addr: map[string]float64{ex.Address(): 0.7},
		desc: map[string]float64{ex.Title(): 0.8},
	}
	c := listing.NewClassifierWithScorer(scorer, testThresholds)

	verdict := c.Classify(cand, []*listing.Listing{ex})
	require.True(t, verdict.Duplicate)
	assert.InDelta(t, 0.8, verdict.Score, 1e-9)
}

func TestClassify_SpecFallback(t *testing.T) {
	mk := func(t *testing.T, mutate func(*builder.ListingBuilder)) *listing.Listing {
		t.Helper()
		return buildListing(t, mutate)
	}

	tests := []struct {
		name      string
		cand      *listing.Listing
		ex        *listing.Listing
		addrScore float64
		duplicate bool
	}{
		{
			name:      "identical specs within price band",
			cand:      mk(t, func(b *builder.ListingBuilder) { b.PriceText = "950 €" }),
			ex:        mk(t, nil),
			addrScore: 0.5,
			duplicate: true,
		},
		{
			name:      "price outside band",
			cand:      mk(t, func(b *builder.ListingBuilder) { b.PriceText = "1000 €" }),
			ex:        mk(t, nil),
			addrScore: 0.5,
			duplicate: false,
		},
		{
			name:      "different room count",
			cand:      mk(t, func(b *builder.ListingBuilder) { b.RoomsText = "T3" }),
			ex:        mk(t, nil),
			addrScore: 0.5,
			duplicate: false,
		},
		{
			name:      "area beyond tolerance",
			cand:      mk(t, func(b *builder.ListingBuilder) { b.AreaText = "55 m²" }),
			ex:        mk(t, nil),
			addrScore: 0.5,
			duplicate: false,
		},
		{
			name:      "area within tolerance",
			cand:      mk(t, func(b *builder.ListingBuilder) { b.AreaText = "47 m²" }),
			ex:        mk(t, nil),
			addrScore: 0.5,
			duplicate: true,
		},
		{
			name:      "unknown rooms and area never disqualify",
			cand:      mk(t, func(b *builder.ListingBuilder) { b.RoomsText = ""; b.AreaText = "" }),
			ex:        mk(t, nil),
			addrScore: 0.5,
			duplicate: true,
		},
		{
			name:      "address below spec gate",
			cand:      mk(t, nil),
			ex:        mk(t, nil),
			addrScore: 0.4,
			duplicate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := stubScorer{addr: map[string]float64{tt.ex.Address(): tt.addrScore}}
			c := listing.NewClassifierWithScorer(scorer, testThresholds)

			verdict := c.Classify(tt.cand, []*listing.Listing{tt.ex})
			assert.Equal(t, tt.duplicate, verdict.Duplicate)
			if tt.duplicate {
				assert.Equal(t, tt.ex.ID(), verdict.Canonical.ID())
				assert.InDelta(t, tt.addrScore, verdict.Score, 1e-9)
			}
		})
	}
}

func TestClassify_InsufficientEvidenceIsDistinct(t *testing.T) {
	ex := buildListing(t, nil)
	scorer := stubScorer{addr: map[string]float64{ex.Address(): 1.0}}
	c := listing.NewClassifierWithScorer(scorer, testThresholds)

	noPrice := listing.Reconstruct(
		uuid.New(), "Appartement", "", 0, nil, nil,
		"apartment", "12 rue de Rivoli", "Paris", "75001",
		"seloger", "https://example.test/a", "a", nil,
		listing.StatusNew, time.Now(), time.Now(), true, nil, nil,
	)
	assert.False(t, c.Classify(noPrice, []*listing.Listing{ex}).Duplicate)

	noCity := listing.Reconstruct(
		uuid.New(), "Appartement", "", 900, nil, nil,
		"apartment", "12 rue de Rivoli", "", "",
		"seloger", "https://example.test/b", "b", nil,
		listing.StatusNew, time.Now(), time.Now(), true, nil, nil,
	)
	assert.False(t, c.Classify(noCity, []*listing.Listing{ex}).Duplicate)
}

func TestClassify_FirstMatchWins(t *testing.T) {
	cand := buildListing(t, nil)
	first := buildListing(t, func(b *builder.ListingBuilder) { b.Address = "1 rue A" })
	second := buildListing(t, func(b *builder.ListingBuilder) { b.Address = "2 rue B" })

	scorer := stubScorer{addr: map[string]float64{
		"1 rue A": 0.9,
		"2 rue B": 0.95,
	}}
	c := listing.NewClassifierWithScorer(scorer, testThresholds)

	verdict := c.Classify(cand, []*listing.Listing{first, second})
	require.True(t, verdict.Duplicate)
	assert.Equal(t, first.ID(), verdict.Canonical.ID())
}
