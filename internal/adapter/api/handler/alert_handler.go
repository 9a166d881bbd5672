package handler

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/usecase"
	"safeline/pkg/response"
)

type AlertHandler struct {
	alertUseCase *usecase.AlertUseCase
}

func NewAlertHandler(alertUseCase *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{
		alertUseCase: alertUseCase,
	}
}

// Coordinates come from the client's location provider. When the device
// denies location permission the request never reaches this endpoint, and a
// request missing coordinates is rejected before any store write happens.
type alertRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func (h *AlertHandler) SendAlert(c echo.Context) error {
	var req alertRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	phone := c.Get("phone").(string)

	if err := h.alertUseCase.SendAlert(c.Request().Context(), phone, *req.Latitude, *req.Longitude); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "alert sent"})
}

func (h *AlertHandler) ShareLocation(c echo.Context) error {
	var req alertRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	phone := c.Get("phone").(string)

	if err := h.alertUseCase.ShareLocation(c.Request().Context(), phone, *req.Latitude, *req.Longitude); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "location shared"})
}
