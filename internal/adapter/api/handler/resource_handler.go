package handler

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/usecase"
	"safeline/pkg/response"
)

type ResourceHandler struct {
	resourceUseCase *usecase.ResourceUseCase
}

func NewResourceHandler(resourceUseCase *usecase.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{
		resourceUseCase: resourceUseCase,
	}
}

type resourceRequest struct {
	City   string `json:"city" validate:"required"`
	Type   string `json:"type" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required"`
}

func (h *ResourceHandler) ListResources(c echo.Context) error {
	resources, err := h.resourceUseCase.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, resources)
}

func (h *ResourceHandler) AddResource(c echo.Context) error {
	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	resource, err := h.resourceUseCase.Add(c.Request().Context(), usecase.ResourceInput{
		City:   req.City,
		Type:   req.Type,
		Name:   req.Name,
		Number: req.Number,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, resource)
}

func (h *ResourceHandler) UpdateResource(c echo.Context) error {
	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	resource, err := h.resourceUseCase.Update(c.Request().Context(), c.Param("id"), usecase.ResourceInput{
		City:   req.City,
		Type:   req.Type,
		Name:   req.Name,
		Number: req.Number,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, resource)
}

func (h *ResourceHandler) DeleteResource(c echo.Context) error {
	if err := h.resourceUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "resource deleted"})
}
