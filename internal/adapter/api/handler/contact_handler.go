package handler

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/usecase"
	"safeline/pkg/response"
)

type ContactHandler struct {
	contactUseCase *usecase.ContactUseCase
}

func NewContactHandler(contactUseCase *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
	}
}

type contactRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,e164"`
}

func (h *ContactHandler) ListContacts(c echo.Context) error {
	phone := c.Get("phone").(string)

	contacts, err := h.contactUseCase.List(c.Request().Context(), phone)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, contacts)
}

func (h *ContactHandler) AddContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	phone := c.Get("phone").(string)

	contact, err := h.contactUseCase.Add(c.Request().Context(), phone, usecase.ContactInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, contact)
}

func (h *ContactHandler) UpdateContact(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	phone := c.Get("phone").(string)
	id := c.Param("id")

	contact, err := h.contactUseCase.Update(c.Request().Context(), phone, id, usecase.ContactInput{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, contact)
}

func (h *ContactHandler) DeleteContact(c echo.Context) error {
	phone := c.Get("phone").(string)
	id := c.Param("id")

	if err := h.contactUseCase.Delete(c.Request().Context(), phone, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "contact deleted"})
}
