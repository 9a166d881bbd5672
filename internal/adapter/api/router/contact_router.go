package router

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/adapter/api/handler"
	"safeline/internal/adapter/api/middleware"
)

func SetupContactRouter(e *echo.Echo, contactHandler *handler.ContactHandler, authMiddleware *middleware.AuthMiddleware) {
	contacts := e.Group("/v1/contacts")
	contacts.Use(authMiddleware.Authenticate)

	contacts.GET("", contactHandler.ListContacts)
	contacts.POST("", contactHandler.AddContact)
	contacts.PUT("/:id", contactHandler.UpdateContact)
	contacts.DELETE("/:id", contactHandler.DeleteContact)
}
