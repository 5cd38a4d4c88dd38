package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/services"
	"github.com/yukikurage/task-tracker/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks matching the query criteria. Criteria combine with
// AND: status, assignee, label (repeatable, any-of), own_tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{
		ActorID: middleware.Actor(c),
	}

	if v := c.Query("status"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid status filter")
			return
		}
		input.StatusID = &id
	}
	if v := c.Query("assignee"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee filter")
			return
		}
		input.AssigneeID = &id
	}
	for _, v := range c.QueryArray("label") {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid label filter")
			return
		}
		input.LabelIDs = append(input.LabelIDs, id)
	}
	// The HTML form era sent "on" for checked boxes; accept both spellings.
	if v := c.Query("own_tasks"); v == "true" || v == "on" || v == "1" {
		input.OwnTasksOnly = true
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task authored by the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		StatusID    uint64   `json:"status_id" binding:"required"`
		AssigneeID  *uint64  `json:"assignee_id"`
		LabelIDs    []uint64 `json:"label_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		StatusID:    req.StatusID,
		AssigneeID:  req.AssigneeID,
		LabelIDs:    req.LabelIDs,
	}, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task. Any authenticated user may do this;
// the author never changes.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Name          *string   `json:"name"`
		Description   *string   `json:"description"`
		StatusID      *uint64   `json:"status_id"`
		AssigneeID    *uint64   `json:"assignee_id"`
		ClearAssignee bool      `json:"clear_assignee"`
		LabelIDs      *[]uint64 `json:"label_ids"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		StatusID:      req.StatusID,
		AssigneeID:    req.AssigneeID,
		ClearAssignee: req.ClearAssignee,
		LabelIDs:      req.LabelIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GenerateTasks returns AI task suggestions extracted from free-form text.
// Suggestions are not persisted; the client creates the ones it keeps.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestions, err := h.taskService.GenerateTasks(c.Request.Context(), services.GenerateTasksInput{
		Text: req.Text,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": suggestions})
}

// DeleteTask deletes a task. Only the author may do this.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id, middleware.Actor(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
