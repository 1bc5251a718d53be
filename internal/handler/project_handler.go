package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/service/project"
)

type ProjectHandler struct {
	svc    *project.Service
	logger *zap.Logger
}

func NewProjectHandler(svc *project.Service, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{svc: svc, logger: logger}
}

func (h *ProjectHandler) List(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		email = c.GetString("user_email")
	}

	projects, err := h.svc.List(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	requester := c.GetString("user_email")

	p, err := h.svc.Get(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

type createProjectRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
	IsPrivate   *bool    `json:"is_private"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project name is required"})
		return
	}

	owner := c.GetString("user_email")
	isPrivate := true
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}

	p, err := h.svc.Create(c.Request.Context(), req.Name, req.Description, owner, req.Members, isPrivate)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

type updateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Members     []string `json:"members"`
	IsPrivate   *bool    `json:"is_private"`
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	requester := c.GetString("user_email")

	p, err := h.svc.Update(c.Request.Context(), requester, c.Param("id"), project.UpdateFields{
		Name:        req.Name,
		Description: req.Description,
		Members:     req.Members,
		IsPrivate:   req.IsPrivate,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	requester := c.GetString("user_email")

	if err := h.svc.Delete(c.Request.Context(), requester, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}
