package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
	"safeline/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/v1/auth")
	auth.Use(middleware.AuthRateLimit())

	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	account := e.Group("/v1/account")
	account.Use(authMiddleware.Authenticate)
	account.PUT("/password", authHandler.ChangePassword)
	account.DELETE("", authHandler.DeleteAccount)
}
