package dto

import (
	"time"

	"github.com/yukikurage/task-tracker/internal/models"
)

// StatusDTO represents a task status in API responses
type StatusDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LabelDTO represents a label in API responses
type LabelDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToStatusDTO converts a Status model to StatusDTO
func ToStatusDTO(status models.Status) StatusDTO {
	return StatusDTO{
		ID:        status.ID,
		Name:      status.Name,
		CreatedAt: status.CreatedAt,
	}
}

// ToStatusDTOs converts a slice of statuses
func ToStatusDTOs(statuses []models.Status) []StatusDTO {
	dtos := make([]StatusDTO, len(statuses))
	for i, status := range statuses {
		dtos[i] = ToStatusDTO(status)
	}
	return dtos
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:        label.ID,
		Name:      label.Name,
		CreatedAt: label.CreatedAt,
	}
}

// ToLabelDTOs converts a slice of labels
func ToLabelDTOs(labels []models.Label) []LabelDTO {
	dtos := make([]LabelDTO, len(labels))
	for i, label := range labels {
		dtos[i] = ToLabelDTO(label)
	}
	return dtos
}
