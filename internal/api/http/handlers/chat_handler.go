package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/api/dto"
	"github.com/bz-technologies/helpdesk/internal/chat"
	"github.com/bz-technologies/helpdesk/internal/domain"
	"github.com/bz-technologies/helpdesk/internal/service"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

const (
	frameMessage = "message"
	framePending = "pending"
	frameError   = "error"
)

// ChatHandler exposes chat panels over REST and websocket.
type ChatHandler struct {
	chats  *service.ChatService
	logger *zap.Logger
}

// NewChatHandler constructs handler.
func NewChatHandler(chats *service.ChatService, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{chats: chats, logger: logger}
}

// OpenSession POST /api/chat/sessions.
func (h *ChatHandler) OpenSession(c *fiber.Ctx) error {
	panel, err := h.chats.Open(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(panel.ID(), panel.Messages(), panel.State())})
}

// GetSession GET /api/chat/sessions/:id.
func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	msgs, state, err := h.chats.Transcript(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(id, msgs, state)})
}

// SendMessage POST /api/chat/sessions/:id/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	reply, err := h.chats.Send(c.UserContext(), c.Params("id"), req.Text)
	if err != nil {
		return chatError(err)
	}
	return c.JSON(fiber.Map{"data": chatMessageResponse(reply)})
}

// CloseSession DELETE /api/chat/sessions/:id.
func (h *ChatHandler) CloseSession(c *fiber.Ctx) error {
	if err := h.chats.Close(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Upgrade only lets websocket handshakes through to Stream.
func (h *ChatHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream GET /ws/chat. The panel lives exactly as long as the connection.
func (h *ChatHandler) Stream(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	panel, err := h.chats.Attach(ctx)
	if err != nil {
		_ = conn.WriteJSON(dto.ChatFrame{Type: frameError, Error: err.Error()})
		return
	}
	defer h.chats.Release(context.Background(), panel)

	for _, m := range panel.Messages() {
		if err := writeMessage(conn, m); err != nil {
			return
		}
	}

	for {
		mt, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("chat websocket closed", zap.String("panel_id", panel.ID()), zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		if err := conn.WriteJSON(dto.ChatFrame{Type: framePending}); err != nil {
			return
		}
		if _, err := panel.Send(ctx, string(payload)); err != nil {
			if err := conn.WriteJSON(dto.ChatFrame{Type: frameError, Error: chatErrorCode(err)}); err != nil {
				return
			}
			continue
		}
		msgs := panel.Messages()
		for _, m := range msgs[len(msgs)-2:] {
			if err := writeMessage(conn, m); err != nil {
				return
			}
		}
	}
}

func writeMessage(conn *websocket.Conn, m domain.ChatMessage) error {
	resp := chatMessageResponse(m)
	return conn.WriteJSON(dto.ChatFrame{Type: frameMessage, Message: &resp})
}

func sessionResponse(id string, msgs []domain.ChatMessage, state chat.State) dto.ChatSessionResponse {
	return dto.ChatSessionResponse{
		ID:       id,
		Pending:  state == chat.StateSending,
		Messages: chatMessageResponses(msgs),
	}
}

func chatError(err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return apperrors.NewValidationError("message text required", map[string]any{"field": "text"})
	case errors.Is(err, chat.ErrBusy):
		return apperrors.NewConflict("CHAT_BUSY", "a reply is still pending")
	case errors.Is(err, chat.ErrClosed):
		return service.ErrSessionNotFound
	default:
		return err
	}
}

func chatErrorCode(err error) string {
	return apperrors.ToDomainError(chatError(err)).Code
}
