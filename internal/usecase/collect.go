package usecase

import (
	"context"
	"log/slog"

	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/usecase/shared"
)

// CollectionPass pulls raw listings from every enabled source for every
// configured city, classifies each against the tracked set, and stores the
// verdicts. Each raw listing is one unit of work in its own transaction so
// a single bad record never aborts the batch.
type CollectionPass struct {
	uow        shared.UnitOfWork
	collectors []shared.Collector
	classifier *listing.Classifier
	search     config.SearchConfig
	sources    config.SourcesConfig
	priceBand  float64
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCollectionPass(
	uow shared.UnitOfWork,
	collectors []shared.Collector,
	classifier *listing.Classifier,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *CollectionPass {
	return &CollectionPass{
		uow:        uow,
		collectors: collectors,
		classifier: classifier,
		search:     cfg.Search,
		sources:    cfg.Sources,
		priceBand:  cfg.Dedup.PriceThreshold,
		clock:      clk,
		logger:     logger,
	}
}

func (p *CollectionPass) Kind() jobrun.Kind { return jobrun.KindCollection }

func (p *CollectionPass) Run(ctx context.Context) (jobrun.Counts, error) {
	var counts jobrun.Counts

	for _, city := range p.search.Cities {
		for _, collector := range p.collectors {
			if !p.sources.IsEnabled(collector.Name()) {
				continue
			}

			raws, err := collector.Collect(ctx, city, p.criteria())
			if err != nil {
				// Transient collaborator failure; the next tick re-scans.
				p.logger.Error("collector failed",
					"source", collector.Name(), "city", city, "error", err.Error())
				counts.Errors++
				continue
			}
			counts.Found += len(raws)

			for _, raw := range raws {
				if err := p.ingest(ctx, raw, &counts); err != nil {
					p.logger.Error("failed to ingest listing",
						"source", collector.Name(), "url", raw.URL, "error", err.Error())
					counts.Errors++
				}
			}

			p.logger.Info("source collected",
				"source", collector.Name(), "city", city, "found", len(raws))
		}
	}

	return counts, nil
}

func (p *CollectionPass) ingest(ctx context.Context, raw listing.Raw, counts *jobrun.Counts) error {
	now := p.clock.Now()

	cand, err := listing.FromRaw(raw, now)
	if err != nil {
		// Incomplete source data gives nothing to compare or store; skip
		// the record rather than block the batch.
		p.logger.Debug("skipping unusable raw listing", "url", raw.URL, "error", err.Error())
		counts.Skipped++
		return nil
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Listings().FindBySourceURL(ctx, cand.SourceURL())
		if err == nil {
			// Re-observation of a known listing: refresh availability.
			if rerr := tx.Listings().Refresh(ctx, existing.ID(), now); rerr != nil {
				return rerr
			}
			counts.Updated++
			return nil
		}
		if !IsNotFound(err) {
			return err
		}

		candidates, err := tx.Listings().FindCandidates(
			ctx, cand.City(), cand.Price()-p.priceBand, cand.Price()+p.priceBand)
		if err != nil {
			return err
		}

		verdict := p.classifier.Classify(cand, candidates)
		if verdict.Duplicate {
			if derr := cand.MarkDuplicateOf(verdict.Canonical, verdict.Score); derr != nil {
				return derr
			}
			if cerr := tx.Listings().Create(ctx, cand); cerr != nil {
				return cerr
			}
			// The canonical record stays the one we track; confirm it is
			// still on the market.
			if rerr := tx.Listings().Refresh(ctx, verdict.Canonical.ID(), now); rerr != nil {
				return rerr
			}
			counts.Duplicates++
			return nil
		}

		if cerr := tx.Listings().Create(ctx, cand); cerr != nil {
			return cerr
		}
		counts.New++
		return nil
	})
}

func (p *CollectionPass) criteria() listing.Criteria {
	return listing.Criteria{
		MinPrice:        p.search.MinPrice,
		MaxPrice:        p.search.MaxPrice,
		MinRooms:        p.search.MinRooms,
		MaxRooms:        p.search.MaxRooms,
		PropertyTypes:   p.search.PropertyTypes,
		Keywords:        p.search.Keywords,
		ExcludeKeywords: p.search.ExcludeKeywords,
	}
}
