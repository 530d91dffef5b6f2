package components

import (
	"smartpark/internal/handler"
	"smartpark/internal/handler/api"
	"smartpark/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSessionHandler,
		api.NewChargingHandler,
		api.NewBotHandler,
		api.NewTariffHandler,
		api.NewPaymentHandler,
		api.NewSpotHandler,
		api.NewCarHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	session *api.SessionHandler,
	charging *api.ChargingHandler,
	bot *api.BotHandler,
	tariff *api.TariffHandler,
	payment *api.PaymentHandler,
	spot *api.SpotHandler,
	car *api.CarHandler,
	user *api.UserHandler,
) handler.Handlers {
	return handler.Handlers{
		Session:  session,
		Charging: charging,
		Bot:      bot,
		Tariff:   tariff,
		Payment:  payment,
		Spot:     spot,
		Car:      car,
		User:     user,
	}
}
