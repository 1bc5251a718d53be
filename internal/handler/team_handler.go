package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/service/team"
)

type TeamHandler struct {
	svc    *team.Service
	logger *zap.Logger
}

func NewTeamHandler(svc *team.Service, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{svc: svc, logger: logger}
}

func (h *TeamHandler) GetByOwner(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner email is required"})
		return
	}

	t, err := h.svc.GetByOwner(c.Request.Context(), email)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TeamHandler) Get(c *gin.Context) {
	t, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

type createTeamRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members"`
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team name is required"})
		return
	}

	owner := c.GetString("user_email")

	t, err := h.svc.Create(c.Request.Context(), req.Name, owner, req.Members)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

type updateTeamRequest struct {
	Name    *string  `json:"name"`
	Members []string `json:"members"`
}

func (h *TeamHandler) Update(c *gin.Context) {
	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Members)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member email is required"})
		return
	}

	addedBy := c.GetString("user_email")

	t, err := h.svc.AddMember(c.Request.Context(), c.Param("id"), req.Email, addedBy)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "member added successfully",
		"team":    t,
	})
}
