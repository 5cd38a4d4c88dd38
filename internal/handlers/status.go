package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/services"
)

// StatusHandler coordinates task status HTTP handlers.
type StatusHandler struct {
	statusService *services.StatusService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListStatuses returns all statuses.
func (h *StatusHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.statusService.ListStatuses()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statuses": dto.ToStatusDTOs(statuses)})
}

// GetStatus returns a single status by ID.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	status, err := h.statusService.GetStatus(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusDTO(*status))
}

// CreateStatus creates a new status.
func (h *StatusHandler) CreateStatus(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, err := h.statusService.CreateStatus(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToStatusDTO(*status))
}

// UpdateStatus renames a status.
func (h *StatusHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	status, err := h.statusService.UpdateStatus(id, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusDTO(*status))
}

// DeleteStatus removes a status unless tasks still reference it.
func (h *StatusHandler) DeleteStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.statusService.DeleteStatus(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status deleted successfully"})
}
