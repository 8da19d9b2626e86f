package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/behalnihal/rag-chatbot-backend/types"
)

type SessionHandler struct {
	chatService ChatService
}

func NewSessionHandler(chatService ChatService) *SessionHandler {
	return &SessionHandler{
		chatService: chatService,
	}
}

func (h *SessionHandler) HandleHistory(c *gin.Context) {
	sessionID := c.Param("id")

	messages, err := h.chatService.History(c.Request.Context(), sessionID)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.HistoryResponse{
			SessionID: sessionID,
			Messages:  messages,
		},
	})
}

func (h *SessionHandler) HandleClear(c *gin.Context) {
	sessionID := c.Param("id")

	if err := h.chatService.ClearSession(c.Request.Context(), sessionID); err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status:  "success",
		Message: "session cleared",
	})
}
