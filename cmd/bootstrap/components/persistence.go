package components

import (
	"rental-hunter/internal/infra/readstore"
	"rental-hunter/internal/infra/uow"
	"rental-hunter/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork owns the write path; every repository is reached
		// through a transaction it opens.
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Read-side stores query the pool directly.
		readstore.NewListingReadStore,
		readstore.NewJobRunReadStore,
	),
)
