package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
)

// WebSocket endpoints authenticate via a token query parameter inside the
// handler, so no auth middleware is mounted here.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.Connect)
	e.GET("/v1/ws/conversations", wsHandler.StreamConversations)
	e.GET("/v1/ws/conversations/:id/messages", wsHandler.StreamMessages)
	e.GET("/v1/ws/support/messages", wsHandler.StreamSupportMessages)
}
