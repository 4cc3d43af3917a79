package bootstrap

import (
	"club-roster/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
)
