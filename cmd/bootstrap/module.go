package bootstrap

import (
	"rental-hunter/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	components.PersistenceModule,
	components.SourcesModule,
	components.UseCaseModule,
	SchedulerModule,
	components.HandlerModule,
)
