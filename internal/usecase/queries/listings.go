package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ListingView struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Price           float64    `json:"price"`
	Rooms           *int       `json:"rooms,omitempty"`
	Area            *float64   `json:"area,omitempty"`
	Address         string     `json:"address,omitempty"`
	City            string     `json:"city"`
	SourceSite      string     `json:"source_site"`
	SourceURL       string     `json:"source_url"`
	Status          string     `json:"status"`
	FirstSeen       time.Time  `json:"first_seen"`
	LastSeen        time.Time  `json:"last_seen"`
	StillAvailable  bool       `json:"still_available"`
	DuplicateOf     *uuid.UUID `json:"duplicate_of,omitempty"`
	SimilarityScore *float64   `json:"similarity_score,omitempty"`
}

type ListingFilter struct {
	City          string
	Status        string
	OnlyAvailable bool
	Limit         int
}

type ListingQueries interface {
	Search(ctx context.Context, filter ListingFilter) ([]ListingView, error)
}
