package bootstrap

import (
	"smartpark/internal/pkg/config"
	"smartpark/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// Tokens are issued by the identity service; this process only validates them.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
