package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/service/page"
)

type PageHandler struct {
	svc    *page.Service
	logger *zap.Logger
}

func NewPageHandler(svc *page.Service, logger *zap.Logger) *PageHandler {
	return &PageHandler{svc: svc, logger: logger}
}

type createPageRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Project string `json:"project" binding:"required"`
}

func (h *PageHandler) Create(c *gin.Context) {
	var req createPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	requester := c.GetString("user_email")

	p, err := h.svc.Create(c.Request.Context(), requester, req.Title, req.Content, req.Project)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *PageHandler) Get(c *gin.Context) {
	requester := c.GetString("user_email")

	p, err := h.svc.Get(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type updatePageRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *PageHandler) Update(c *gin.Context) {
	var req updatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	requester := c.GetString("user_email")

	p, err := h.svc.Update(c.Request.Context(), requester, c.Param("id"), req.Title, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PageHandler) Delete(c *gin.Context) {
	requester := c.GetString("user_email")

	if err := h.svc.Delete(c.Request.Context(), requester, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "page deleted successfully"})
}
