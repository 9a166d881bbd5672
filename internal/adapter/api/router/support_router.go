package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
	"safeline/internal/adapter/api/middleware"
)

func SetupSupportRouter(e *echo.Echo, supportHandler *handler.SupportHandler, authMiddleware *middleware.AuthMiddleware) {
	support := e.Group("/v1/support")
	support.Use(authMiddleware.Authenticate)

	support.GET("/messages", supportHandler.GetMessages)
	support.POST("/messages", supportHandler.SendMessage)
	support.DELETE("", supportHandler.DeleteThread)
	support.DELETE("/messages/:messageId", supportHandler.DeleteMessage)
}
