package components

import (
	"smartpark/internal/pkg/clock"
	"smartpark/internal/usecase"
	"smartpark/internal/usecase/commands"
	"smartpark/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	usecase.NewTokenValidator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSessionUseCase,
		commands.NewChargingUseCase,
		commands.NewTariffUseCase,
		commands.NewUserUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSessionQueries,
		queries.NewChargingQueries,
		queries.NewTariffQueries,
		queries.NewPaymentQueries,
		queries.NewSpotQueries,
		queries.NewCarQueries,
	),
)
