package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/service/chat"
)

type ChatHandler struct {
	svc    *chat.Service
	logger *zap.Logger
}

func NewChatHandler(svc *chat.Service, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, logger: logger}
}

func (h *ChatHandler) List(c *gin.Context) {
	requester := c.GetString("user_email")

	messages, err := h.svc.List(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

type postMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Post(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text is required"})
		return
	}

	requester := c.GetString("user_email")

	m, err := h.svc.Post(c.Request.Context(), requester, c.Param("id"), req.Message)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}
