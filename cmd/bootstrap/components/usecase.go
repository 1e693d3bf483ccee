package components

import (
	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewClassifier,
		usecase.NewCollectionPass,
		usecase.NewInitiationPass,
		usecase.NewFollowUpPass,
		usecase.NewRetentionPass,
		usecase.NewResponseUseCase,
		usecase.NewJobRunRecorder,
	),
)

func NewClassifier(cfg config.Config) *listing.Classifier {
	return listing.NewClassifier(listing.Thresholds{
		Address:     cfg.Dedup.AddressThreshold,
		Description: cfg.Dedup.DescriptionThreshold,
		PriceBand:   cfg.Dedup.PriceThreshold,
	})
}
