package components

import (
	"club-roster/internal/handler"
	"club-roster/internal/handler/api"
	"club-roster/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewMemberHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		func(auth *api.AuthHandler, m *api.MemberHandler, b *api.BookingHandler) handler.Handlers {
			return handler.Handlers{Auth: auth, Member: m, Booking: b}
		},
	),
	fx.Invoke(handler.NewRouter),
)
