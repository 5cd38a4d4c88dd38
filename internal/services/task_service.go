package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-tracker/internal/authz"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"gorm.io/gorm"
)

// taskPreloads are the relations loaded for single-task responses.
var taskPreloads = []string{"Status", "Author", "Assignee", "Labels"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo   repository.TaskRepository
	statusRepo repository.StatusRepository
	labelRepo  repository.LabelRepository
	userRepo   repository.UserRepository
	aiService  *AIService
}

// NewTaskService creates a new TaskService. aiService may be nil; task
// generation then reports itself as unconfigured.
func NewTaskService(
	taskRepo repository.TaskRepository,
	statusRepo repository.StatusRepository,
	labelRepo repository.LabelRepository,
	userRepo repository.UserRepository,
	aiService *AIService,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
		labelRepo:  labelRepo,
		userRepo:   userRepo,
		aiService:  aiService,
	}
}

// ListTasksInput represents filters for listing tasks. Every criterion is
// optional and supplied criteria combine with AND. LabelIDs matches tasks
// carrying any of the given labels. OwnTasksOnly keeps tasks authored by the
// acting user and is a pass-through when no actor is known.
type ListTasksInput struct {
	StatusID     *uint64
	AssigneeID   *uint64
	LabelIDs     []uint64
	OwnTasksOnly bool
	ActorID      *uint64
	Page         int
	PageSize     int
}

// CreateTaskInput represents input for creating a task. The author is never
// part of the input; it is always the acting user.
type CreateTaskInput struct {
	Name        string
	Description string
	StatusID    uint64
	AssigneeID  *uint64
	LabelIDs    []uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; the author cannot be changed at all.
type UpdateTaskInput struct {
	Name          *string
	Description   *string
	StatusID      *uint64
	AssigneeID    *uint64
	ClearAssignee bool
	LabelIDs      *[]uint64
}

// ListTasks returns tasks matching the filters, in creation order.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		StatusID:   input.StatusID,
		AssigneeID: input.AssigneeID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	if len(input.LabelIDs) > 0 {
		filter.LabelIDs = uniqueUint64(input.LabelIDs)
	}
	if input.OwnTasksOnly && input.ActorID != nil {
		filter.AuthorID = input.ActorID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a new task authored by the acting user.
func (s *TaskService) CreateTask(input CreateTaskInput, authorID uint64) (*models.Task, error) {
	verr := newValidationError()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		verr.add("name", "name is required")
	}

	if err := s.checkStatusExists(input.StatusID, verr); err != nil {
		return nil, err
	}
	if err := s.checkAssigneeExists(input.AssigneeID, verr); err != nil {
		return nil, err
	}
	labels, err := s.resolveLabels(input.LabelIDs, verr)
	if err != nil {
		return nil, err
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        name,
		Description: input.Description,
		StatusID:    input.StatusID,
		AuthorID:    authorID,
		AssigneeID:  input.AssigneeID,
		Labels:      labels,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	created, err := s.taskRepo.FindByID(task.ID, taskPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return created, nil
}

// UpdateTask updates an existing task. Any authenticated user may update any
// task; only deletion is restricted to the author, and the author field
// itself is immutable.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Labels")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	verr := newValidationError()

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			verr.add("name", "name is required")
		}
		task.Name = name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.StatusID != nil {
		if err := s.checkStatusExists(*input.StatusID, verr); err != nil {
			return nil, err
		}
		task.StatusID = *input.StatusID
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if err := s.checkAssigneeExists(input.AssigneeID, verr); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}

	labels := task.Labels
	if input.LabelIDs != nil {
		labels, err = s.resolveLabels(*input.LabelIDs, verr)
		if err != nil {
			return nil, err
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	// Detach loaded associations so Save only touches task columns.
	task.Labels = nil
	task.Assignee = nil

	if err := s.taskRepo.Update(task, labels); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated, err := s.taskRepo.FindByID(task.ID, taskPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return updated, nil
}

// DeleteTask deletes a task. Only the author may do this.
func (s *TaskService) DeleteTask(taskID uint64, actorID *uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if decision := authz.RequireOwner(actorID, task.AuthorID); !decision.Allowed {
		return guardError(decision)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GenerateTasksInput represents input for AI task generation.
type GenerateTasksInput struct {
	Text string
}

// GenerateTasks extracts task suggestions from free-form text. Nothing is
// persisted; the caller turns accepted suggestions into tasks via CreateTask.
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		verr := newValidationError()
		verr.add("text", "text is required")
		return nil, verr
	}

	suggestions, err := s.aiService.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	valid := make([]GeneratedTask, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if strings.TrimSpace(suggestion.Name) == "" {
			continue
		}
		valid = append(valid, suggestion)
		if len(valid) == constants.MaxAIGeneratedTasks {
			break
		}
	}

	if len(valid) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	return valid, nil
}

func (s *TaskService) checkStatusExists(statusID uint64, verr *ValidationError) error {
	if statusID == 0 {
		verr.add("status_id", "status is required")
		return nil
	}
	if _, err := s.statusRepo.FindByID(statusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verr.add("status_id", "status does not exist")
			return nil
		}
		return fmt.Errorf("failed to check status: %w", err)
	}
	return nil
}

func (s *TaskService) checkAssigneeExists(assigneeID *uint64, verr *ValidationError) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.userRepo.FindByID(*assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			verr.add("assignee_id", "assignee does not exist")
			return nil
		}
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	return nil
}

func (s *TaskService) resolveLabels(labelIDs []uint64, verr *ValidationError) ([]models.Label, error) {
	ids := uniqueUint64(labelIDs)
	labels, err := s.labelRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to check labels: %w", err)
	}
	if len(labels) != len(ids) {
		verr.add("label_ids", "one or more labels do not exist")
	}
	return labels, nil
}
