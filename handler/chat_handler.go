package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/behalnihal/rag-chatbot-backend/types"
)

// ChatService is the slice of the chat core the HTTP layer needs.
type ChatService interface {
	Chat(ctx context.Context, query, sessionID string) (*types.ChatResponse, error)
	History(ctx context.Context, sessionID string) ([]types.Message, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type ChatHandler struct {
	chatService ChatService
}

func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, types.ErrInvalidRequest)
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), req.Query, req.SessionID)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   resp,
	})
}

// sendError maps the core's taxonomy onto status codes without leaking
// provider error bodies.
func sendError(c *gin.Context, err error) {
	if errors.Is(err, types.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, types.DataResponse{
		Status:  "error",
		Message: "internal processing error",
	})
}
