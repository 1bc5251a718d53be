package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"collabhub/internal/model"
	"collabhub/internal/service/task"
)

type TaskHandler struct {
	svc    *task.Service
	logger *zap.Logger
}

func NewTaskHandler(svc *task.Service, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

func (h *TaskHandler) List(c *gin.Context) {
	requester := c.GetString("user_email")
	projectID := c.Query("project")

	tasks, err := h.svc.List(c.Request.Context(), requester, projectID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	requester := c.GetString("user_email")

	t, err := h.svc.Get(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

type createTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  []string   `json:"assigned_to"`
	Project     string     `json:"project" binding:"required"`
	Subtasks    []string   `json:"subtasks"`
	Attachments []string   `json:"attachments"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and project are required"})
		return
	}

	requester := c.GetString("user_email")

	t, err := h.svc.Create(c.Request.Context(), requester, task.CreateFields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		Project:     req.Project,
		Subtasks:    req.Subtasks,
		Attachments: req.Attachments,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	Priority    *string         `json:"priority"`
	Category    *string         `json:"category"`
	DueDate     *time.Time      `json:"due_date"`
	ClearDue    bool            `json:"clear_due"`
	AssignedTo  []string        `json:"assigned_to"`
	Subtasks    []string        `json:"subtasks"`
	Comments    []model.Comment `json:"comments"`
	Attachments []string        `json:"attachments"`
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	requester := c.GetString("user_email")

	t, err := h.svc.Update(c.Request.Context(), requester, c.Param("id"), task.UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
		AssignedTo:  req.AssignedTo,
		Subtasks:    req.Subtasks,
		Comments:    req.Comments,
		Attachments: req.Attachments,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	requester := c.GetString("user_email")

	if err := h.svc.Delete(c.Request.Context(), requester, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
