package handler

import (
	"github.com/labstack/echo/v4"

	"safeline/internal/usecase"
	"safeline/pkg/response"
	"safeline/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	RecipientPhone string `json:"recipient_phone" validate:"required,e164"`
	Text           string `json:"text" validate:"required"`
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	phone := c.Get("phone").(string)

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), phone)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	phone := c.Get("phone").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), phone, usecase.SendMessageInput{
		RecipientPhone: req.RecipientPhone,
		Text:           req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	phone := c.Get("phone").(string)
	conversationID := c.Param("id")
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.GetMessages(c.Request().Context(), phone, conversationID, pagination.Limit, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, messages, total, pagination.Limit, pagination.Offset)
}

func (h *ChatHandler) DeleteConversation(c echo.Context) error {
	phone := c.Get("phone").(string)
	conversationID := c.Param("id")

	if err := h.chatUseCase.DeleteConversation(c.Request().Context(), phone, conversationID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "conversation deleted"})
}

func (h *ChatHandler) DeleteMessage(c echo.Context) error {
	phone := c.Get("phone").(string)
	conversationID := c.Param("id")
	messageID := c.Param("messageId")

	if err := h.chatUseCase.DeleteMessage(c.Request().Context(), phone, conversationID, messageID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "message deleted"})
}
