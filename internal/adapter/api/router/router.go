package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
	"safeline/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Contact   *handler.ContactHandler
	Chat      *handler.ChatHandler
	Alert     *handler.AlertHandler
	Support   *handler.SupportHandler
	Resource  *handler.ResourceHandler
	WebSocket *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupProfileRouter(e, h.Profile, authMiddleware)
	SetupContactRouter(e, h.Contact, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupAlertRouter(e, h.Alert, authMiddleware)
	SetupSupportRouter(e, h.Support, authMiddleware)
	SetupResourceRouter(e, h.Resource, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
}
