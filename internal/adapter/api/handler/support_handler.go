package handler

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/usecase"
	"safeline/pkg/response"
	"safeline/pkg/utils"
)

type SupportHandler struct {
	supportUseCase *usecase.SupportUseCase
}

func NewSupportHandler(supportUseCase *usecase.SupportUseCase) *SupportHandler {
	return &SupportHandler{
		supportUseCase: supportUseCase,
	}
}

type supportMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *SupportHandler) SendMessage(c echo.Context) error {
	var req supportMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	phone := c.Get("phone").(string)

	message, err := h.supportUseCase.SendMessage(c.Request().Context(), phone, req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *SupportHandler) GetMessages(c echo.Context) error {
	phone := c.Get("phone").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.supportUseCase.GetMessages(c.Request().Context(), phone, pagination.Limit, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, pagination.Limit, pagination.Offset)
}

func (h *SupportHandler) DeleteThread(c echo.Context) error {
	phone := c.Get("phone").(string)

	if err := h.supportUseCase.DeleteThread(c.Request().Context(), phone); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "support thread deleted"})
}

func (h *SupportHandler) DeleteMessage(c echo.Context) error {
	phone := c.Get("phone").(string)
	messageID := c.Param("messageId")

	if err := h.supportUseCase.DeleteMessage(c.Request().Context(), phone, messageID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "message deleted"})
}
