package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/services"
)

// LabelHandler coordinates label HTTP handlers.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// ListLabels returns all labels.
func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels, err := h.labelService.ListLabels()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labels": dto.ToLabelDTOs(labels)})
}

// GetLabel returns a single label by ID.
func (h *LabelHandler) GetLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	label, err := h.labelService.GetLabel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// CreateLabel creates a new label.
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.CreateLabel(req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

// UpdateLabel renames a label.
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.UpdateLabel(id, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// DeleteLabel removes a label unless tasks still carry it.
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.labelService.DeleteLabel(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Label deleted successfully"})
}
