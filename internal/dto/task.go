package dto

import (
	"time"

	"github.com/yukikurage/task-tracker/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StatusID    uint64     `json:"status_id"`
	AuthorID    uint64     `json:"author_id"`
	AssigneeID  *uint64    `json:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Status      *StatusDTO `json:"status,omitempty"`
	Author      *UserDTO   `json:"author,omitempty"`
	Assignee    *UserDTO   `json:"assignee,omitempty"`
	Labels      []LabelDTO `json:"labels"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		StatusID:    task.StatusID,
		AuthorID:    task.AuthorID,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Labels:      []LabelDTO{},
	}

	// Include relations only when preloaded
	if task.Status.ID != 0 {
		status := ToStatusDTO(task.Status)
		dto.Status = &status
	}
	if task.Author.ID != 0 {
		author := ToUserDTO(task.Author)
		dto.Author = &author
	}
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}
	if len(task.Labels) > 0 {
		dto.Labels = ToLabelDTOs(task.Labels)
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int(totalCount) / pageSize
		if int(totalCount)%pageSize > 0 {
			totalPages++
		}
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
