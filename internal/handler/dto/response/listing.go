package response

import (
	"time"

	"rental-hunter/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingResponse struct {
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

func FromListingView(v queries.ListingView) ListingResponse {
	return ListingResponse{
		ID:              v.ID,
		Title:           v.Title,
		Price:           v.Price,
		Rooms:           v.Rooms,
		Area:            v.Area,
		Address:         v.Address,
		City:            v.City,
		SourceSite:      v.SourceSite,
		SourceURL:       v.SourceURL,
		Status:          v.Status,
		FirstSeen:       v.FirstSeen,
		LastSeen:        v.LastSeen,
		StillAvailable:  v.StillAvailable,
		DuplicateOf:     v.DuplicateOf,
		SimilarityScore: v.SimilarityScore,
	}
}

func FromListingList(views []queries.ListingView) []ListingResponse {
	out := make([]ListingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromListingView(v))
	}
	return out
}
