//go:build unit || e2e

package builder

import (
	"time"

	"rental-hunter/internal/domain/listing"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	Title       string
	Description string
	PriceText   string
	RoomsText   string
	AreaText    string
	Type        string
	Address     string
	City        string
	PostalCode  string
	SourceSite  string
	SourceID    string
	URL         string
	SeenAt      time.Time
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		Title:       "Appartement lumineux proche centre",
		Description: "Bel appartement de 2 pièces avec balcon, proche métro.",
		PriceText:   "920 € CC",
		RoomsText:   "T2",
		AreaText:    "45 m²",
		Type:        "apartment",
		Address:     "12 rue de Rivoli",
		City:        "Paris",
		PostalCode:  "75001",
		SourceSite:  "seloger",
		SourceID:    "sl-" + uuid.NewString()[:8],
		URL:         "https://www.seloger.com/annonces/" + uuid.NewString(),
		SeenAt:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) BuildRaw() listing.Raw {
	return listing.Raw{
		SourceSite:  b.SourceSite,
		SourceID:    b.SourceID,
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		PriceText:   b.PriceText,
		RoomsText:   b.RoomsText,
		AreaText:    b.AreaText,
		Type:        b.Type,
		Address:     b.Address,
		City:        b.City,
		PostalCode:  b.PostalCode,
	}
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	return listing.FromRaw(b.BuildRaw(), b.SeenAt)
}

// MustBuildDomain panics on validation failure; intended for fixtures whose
// fields are known valid.
func (b *ListingBuilder) MustBuildDomain() *listing.Listing {
	l, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return l
}
