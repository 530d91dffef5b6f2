package components

import (
	"smartpark/internal/infra/readstore"
	"smartpark/internal/infra/repository"
	"smartpark/internal/infra/uow"
	"smartpark/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewSessionReadStore,
			fx.As(new(queries.SessionViewRepo)),
			fx.As(new(queries.SessionOwnershipRepo)),
		),
		fx.Annotate(
			readstore.NewChargeReadStore,
			fx.As(new(queries.ChargeViewRepo)),
			fx.As(new(queries.ChargeEnergyRepo)),
		),
		fx.Annotate(
			readstore.NewTariffReadStore,
			fx.As(new(queries.TariffViewRepo)),
			fx.As(new(queries.TariffResolverRepo)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentViewRepo)),
		),
		fx.Annotate(
			readstore.NewSpotReadStore,
			fx.As(new(queries.SpotViewRepo)),
		),
		fx.Annotate(
			readstore.NewCarReadStore,
			fx.As(new(queries.CarViewRepo)),
		),
		fx.Annotate(
			repository.NewBotRepository,
			fx.As(new(queries.BotRepo)),
		),
	),
)
