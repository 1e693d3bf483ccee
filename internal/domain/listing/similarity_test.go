//go:build unit

package listing_test

import (
	"testing"

	"rental-hunter/internal/domain/listing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases and trims", in: "  12 Rue De Rivoli  ", want: "12 r de rivoli"},
		{name: "abbreviates street types", in: "5 boulevard Saint-Michel", want: "5 bd saint michel"},
		{name: "strips city and postal code", in: "8 avenue Foch, 75116 Paris", want: "8 av foch"},
		{name: "collapses punctuation and spacing", in: "3,   place  Bellecour!", want: "3 pl bellecour"},
		{name: "empty input", in: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, listing.NormalizeAddress(tc.in))
		})
	}
}

func TestNormalizeDescription(t *testing.T) {
	got := listing.NormalizeDescription("Appartement disponible immédiatement, proche métro. Visite sur dossier.")
	assert.NotContains(t, got, "appartement")
	assert.NotContains(t, got, "disponible")
	assert.NotContains(t, got, "visite")
	assert.Contains(t, got, "proche métro")
}

func TestAddressSimilarity(t *testing.T) {
	t.Run("identical addresses score 1", func(t *testing.T) {
		assert.InDelta(t, 1.0, listing.AddressSimilarity("12 rue de Rivoli", "12 rue de Rivoli"), 1e-9)
	})

	t.Run("abbreviated variant of same address crosses the duplicate threshold", func(t *testing.T) {
		score := listing.AddressSimilarity("12 rue de Rivoli, 75001 Paris", "12 r Rivoli")
		assert.Greater(t, score, 0.85)
	})

	t.Run("unrelated addresses score low", func(t *testing.T) {
		score := listing.AddressSimilarity("12 rue de Rivoli", "98 quai des Chartrons")
		assert.Less(t, score, 0.6)
	})

	t.Run("empty side scores zero", func(t *testing.T) {
		assert.Zero(t, listing.AddressSimilarity("", "12 rue de Rivoli"))
		assert.Zero(t, listing.AddressSimilarity("12 rue de Rivoli", ""))
	})

	t.Run("score is clamped to 1", func(t *testing.T) {
		score := listing.AddressSimilarity("1 rue Victor Hugo", "1 rue Victor Hugo")
		assert.LessOrEqual(t, score, 1.0)
	})
}

func TestDescriptionSimilarity(t *testing.T) {
	t.Run("token order does not matter", func(t *testing.T) {
		a := "balcon ensoleillé deux pièces proche métro"
		b := "proche métro deux pièces balcon ensoleillé"
		assert.InDelta(t, 1.0, listing.DescriptionSimilarity(a, b), 1e-9)
	})

	t.Run("filler words do not inflate the score", func(t *testing.T) {
		a := "appartement location disponible immédiatement balcon sud"
		b := "logement à louer libre balcon sud"
		score := listing.DescriptionSimilarity(a, b)
		assert.Greater(t, score, 0.7)
	})

	t.Run("different properties score low", func(t *testing.T) {
		a := "studio sombre rez-de-chaussée sur cour"
		b := "grand duplex dernier étage vue panoramique terrasse"
		assert.Less(t, listing.DescriptionSimilarity(a, b), 0.5)
	})

	t.Run("empty side scores zero", func(t *testing.T) {
		assert.Zero(t, listing.DescriptionSimilarity("", "balcon"))
	})
}
