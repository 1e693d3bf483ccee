package components

import (
	"log/slog"

	"rental-hunter/internal/infra/channel"
	"rental-hunter/internal/infra/collector"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/usecase/shared"

	"go.uber.org/fx"
)

var SourcesModule = fx.Module("sources",
	fx.Provide(
		NewCollectors,
		NewDispatcher,
	),
)

// NewCollectors builds one collector per known source. The collection pass
// skips collectors whose source is not enabled, so building all of them is
// harmless.
func NewCollectors(cfg config.Config, logger *slog.Logger) []shared.Collector {
	collectors := []shared.Collector{
		collector.NewMockCollector(),
	}

	for _, src := range []struct {
		name    string
		baseURL string
	}{
		{name: "seloger", baseURL: cfg.Sources.SeLogerBaseURL},
		{name: "leboncoin", baseURL: cfg.Sources.LeboncoinBaseURL},
	} {
		c, err := collector.NewHTTPCollector(collector.HTTPCollectorOptions{
			Name:      src.name,
			BaseURL:   src.baseURL,
			UserAgent: cfg.Sources.UserAgent,
			Timeout:   cfg.Sources.RequestTimeout,
		})
		if err != nil {
			logger.Warn("skipping collector with invalid configuration", "source", src.name, "error", err.Error())
			continue
		}
		collectors = append(collectors, c)
	}

	return collectors
}

func NewDispatcher(cfg config.Config) shared.Dispatcher {
	email := channel.NewEmailChannel(cfg.SMTP)
	phone := channel.NewPhoneChannel(cfg.Telephony)
	return channel.NewChannelDispatcher(email, phone)
}
