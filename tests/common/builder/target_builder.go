//go:build unit || e2e

package builder

import (
	"time"

	"rental-hunter/internal/domain/outreach"

	"github.com/google/uuid"
)

type TargetBuilder struct {
	ListingID  uuid.UUID
	Name       string
	AgencyName string
	Email      string
	Phone      string
	CreatedAt  time.Time
}

func NewTargetBuilder() *TargetBuilder {
	return &TargetBuilder{
		ListingID:  uuid.New(),
		Name:       "Mme Dupont",
		AgencyName: "Agence du Centre",
		Email:      "contact@agence-du-centre.fr",
		Phone:      "+33123456789",
		CreatedAt:  time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	}
}

func (b *TargetBuilder) With(mutate func(*TargetBuilder)) *TargetBuilder {
	mutate(b)
	return b
}

func (b *TargetBuilder) BuildDomain() *outreach.Target {
	return outreach.NewTarget(b.ListingID, b.Name, b.AgencyName, b.Email, b.Phone, b.CreatedAt)
}
