package collector

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/usecase/shared"
)

// MockCollector synthesizes plausible listings without network access. Output
// is deterministic for a given city so demos and tests are reproducible; a
// small share of listings are near-duplicates of each other to exercise the
// matching rules.
type MockCollector struct {
	name  string
	count int
}

func NewMockCollector() *MockCollector {
	return &MockCollector{name: "mock", count: 12}
}

func (m *MockCollector) Name() string { return m.name }

var mockStreets = []string{
	"rue de la République", "avenue Victor Hugo", "boulevard Saint-Michel",
	"place Bellecour", "rue du Commerce", "avenue Jean Jaurès",
}

var mockTitles = []string{
	"Appartement lumineux proche centre",
	"Studio rénové avec balcon",
	"T2 calme proche métro",
	"Bel appartement avec parking",
}

func (m *MockCollector) Collect(_ context.Context, city string, criteria listing.Criteria) ([]listing.Raw, error) {
	rng := rand.New(rand.NewSource(citySeed(city)))

	minPrice := criteria.MinPrice
	if minPrice <= 0 {
		minPrice = 500
	}
	maxPrice := criteria.MaxPrice
	if maxPrice <= minPrice {
		maxPrice = minPrice + 800
	}

	out := make([]listing.Raw, 0, m.count)
	for i := 0; i < m.count; i++ {
		street := mockStreets[rng.Intn(len(mockStreets))]
		num := 1 + rng.Intn(90)
		price := minPrice + rng.Intn(maxPrice-minPrice)
		rooms := 1 + rng.Intn(3)
		area := 18 + rng.Intn(60)

		raw := listing.Raw{
			SourceSite:  m.name,
			SourceID:    fmt.Sprintf("mock-%s-%03d", strings.ToLower(city), i),
			URL:         fmt.Sprintf("https://mock.example/%s/annonce-%03d", strings.ToLower(city), i),
			Title:       mockTitles[rng.Intn(len(mockTitles))],
			Description: fmt.Sprintf("Bel appartement de %d pièces au coeur de %s. Proche transports.", rooms, city),
			PriceText:   fmt.Sprintf("%d € CC", price),
			RoomsText:   fmt.Sprintf("T%d", rooms),
			AreaText:    fmt.Sprintf("%d m²", area),
			Type:        "apartment",
			Address:     fmt.Sprintf("%d %s", num, street),
			City:        city,
			PostalCode:  fmt.Sprintf("%02d000", 1+rng.Intn(95)),
		}
		out = append(out, raw)

		// Every fourth listing gets a cross-posted twin: same place, slightly
		// different address spelling and price, different source URL.
		if i%4 == 3 {
			twin := raw
			twin.SourceID = raw.SourceID + "-bis"
			twin.URL = fmt.Sprintf("https://mock.example/%s/repost-%03d", strings.ToLower(city), i)
			twin.Address = fmt.Sprintf("%d %s", num, abbreviate(street))
			twin.PriceText = fmt.Sprintf("%d euros", price+rng.Intn(30))
			out = append(out, twin)
		}
	}
	return out, nil
}

func abbreviate(street string) string {
	r := strings.NewReplacer(
		"avenue", "av", "boulevard", "bd", "place", "pl", "rue", "r",
	)
	return r.Replace(street)
}

func citySeed(city string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(city)))
	return int64(h.Sum64())
}

var _ shared.Collector = (*MockCollector)(nil)
