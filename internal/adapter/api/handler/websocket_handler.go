package handler

import (
	"context"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"safeline/internal/infrastructure/token"
	ws "safeline/internal/infrastructure/websocket"
	"safeline/internal/usecase"
	"safeline/pkg/errors"
	"safeline/pkg/response"
)

// WebSocketHandler serves three live feeds: the event stream pushed by the
// connection manager, a per-conversation message feed, and the caller's
// conversation-list feed. The two document feeds are backed by store
// snapshot listeners that are cancelled when the socket closes.
type WebSocketHandler struct {
	wsManager      *ws.Manager
	tokens         *token.Manager
	chatUseCase    *usecase.ChatUseCase
	supportUseCase *usecase.SupportUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, tokens *token.Manager, chatUseCase *usecase.ChatUseCase, supportUseCase *usecase.SupportUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		tokens:         tokens,
		chatUseCase:    chatUseCase,
		supportUseCase: supportUseCase,
	}
}

// phoneFromRequest authenticates the socket. Browsers cannot set headers on
// WebSocket upgrades, so the token travels in a query parameter.
func (h *WebSocketHandler) phoneFromRequest(c echo.Context) (string, error) {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		return "", errors.Unauthorized("Authentication token is required", nil)
	}

	phone, err := h.tokens.Verify(tokenString)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}

	return phone, nil
}

// Connect registers the caller with the connection manager so they receive
// pushed events (new messages, alert notifications).
func (h *WebSocketHandler) Connect(c echo.Context) error {
	phone, err := h.phoneFromRequest(c)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		Phone: phone,
		Conn:  conn,
		Send:  make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}

// StreamMessages streams a conversation's messages, newest first, pushing the
// full list on every change until the client disconnects.
func (h *WebSocketHandler) StreamMessages(c echo.Context) error {
	phone, err := h.phoneFromRequest(c)
	if err != nil {
		return response.Error(c, err)
	}
	conversationID := c.Param("id")

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	feed, err := h.chatUseCase.ListenMessages(ctx, phone, conversationID)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}
	defer conn.Close()

	// Cancel the listener as soon as the peer goes away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for messages := range feed {
		if err := conn.WriteJSON(messages); err != nil {
			return nil
		}
	}

	return nil
}

// StreamConversations streams the caller's conversation list.
func (h *WebSocketHandler) StreamConversations(c echo.Context) error {
	phone, err := h.phoneFromRequest(c)
	if err != nil {
		return response.Error(c, err)
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	feed, err := h.chatUseCase.ListenConversations(ctx, phone)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}
	defer conn.Close()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for conversations := range feed {
		if err := conn.WriteJSON(conversations); err != nil {
			return nil
		}
	}

	return nil
}

// StreamSupportMessages streams the caller's support thread.
func (h *WebSocketHandler) StreamSupportMessages(c echo.Context) error {
	phone, err := h.phoneFromRequest(c)
	if err != nil {
		return response.Error(c, err)
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	feed, err := h.supportUseCase.ListenMessages(ctx, phone)
	if err != nil {
		return response.Error(c, err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}
	defer conn.Close()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for messages := range feed {
		if err := conn.WriteJSON(messages); err != nil {
			return nil
		}
	}

	return nil
}
