package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
	"safeline/internal/adapter/api/middleware"
)

func SetupResourceRouter(e *echo.Echo, resourceHandler *handler.ResourceHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	resources := e.Group("/v1/resources")
	resources.Use(authMiddleware.Authenticate)

	resources.GET("", resourceHandler.ListResources)

	// Directory management is restricted to admins
	admin := resources.Group("")
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("", resourceHandler.AddResource)
	admin.PUT("/:id", resourceHandler.UpdateResource)
	admin.DELETE("/:id", resourceHandler.DeleteResource)
}
