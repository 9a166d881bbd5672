package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
	"safeline/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	conversations := e.Group("/v1/conversations")
	conversations.Use(authMiddleware.Authenticate)

	conversations.GET("", chatHandler.ListConversations)
	conversations.POST("/messages", chatHandler.SendMessage)
	conversations.GET("/:id/messages", chatHandler.GetMessages)
	conversations.DELETE("/:id", chatHandler.DeleteConversation)
	conversations.DELETE("/:id/messages/:messageId", chatHandler.DeleteMessage)
}
