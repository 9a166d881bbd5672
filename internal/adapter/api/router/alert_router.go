package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
	"safeline/internal/adapter/api/middleware"
)

func SetupAlertRouter(e *echo.Echo, alertHandler *handler.AlertHandler, authMiddleware *middleware.AuthMiddleware) {
	alert := e.Group("/v1/alert")
	alert.Use(authMiddleware.Authenticate)
	alert.Use(middleware.AlertRateLimit())

	alert.POST("", alertHandler.SendAlert)
	alert.POST("/location", alertHandler.ShareLocation)
}
