package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-tracker/internal/authz"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"gorm.io/gorm"
)

// StatusService handles task status business logic. All operations assume an
// authenticated actor; the transport layer enforces that before calling in.
type StatusService struct {
	statusRepo repository.StatusRepository
}

// NewStatusService creates a new StatusService.
func NewStatusService(statusRepo repository.StatusRepository) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
	}
}

// ListStatuses returns all statuses.
func (s *StatusService) ListStatuses() ([]models.Status, error) {
	statuses, err := s.statusRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

// GetStatus retrieves a status by ID.
func (s *StatusService) GetStatus(id uint64) (*models.Status, error) {
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to find status: %w", err)
	}
	return status, nil
}

// CreateStatus creates a new status with a unique name.
func (s *StatusService) CreateStatus(name string) (*models.Status, error) {
	name = strings.TrimSpace(name)
	if err := s.validateName(name, 0); err != nil {
		return nil, err
	}

	status := &models.Status{Name: name}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	return status, nil
}

// UpdateStatus renames a status, keeping the name unique.
func (s *StatusService) UpdateStatus(id uint64, name string) (*models.Status, error) {
	status, err := s.GetStatus(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.validateName(name, status.ID); err != nil {
		return nil, err
	}

	status.Name = name
	if err := s.statusRepo.Update(status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return status, nil
}

// DeleteStatus removes a status. The delete is rejected while any task
// references it.
func (s *StatusService) DeleteStatus(id uint64) error {
	if _, err := s.GetStatus(id); err != nil {
		return err
	}

	dependents, err := s.statusRepo.CountTasks(id)
	if err != nil {
		return fmt.Errorf("failed to count dependent tasks: %w", err)
	}
	if decision := authz.RequireNoDependents(dependents); !decision.Allowed {
		return ErrStatusInUse
	}

	// The repository re-verifies inside the delete transaction, closing the
	// race with a concurrently created task.
	if err := s.statusRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrHasDependentTasks) {
			return ErrStatusInUse
		}
		return fmt.Errorf("failed to delete status: %w", err)
	}

	return nil
}

func (s *StatusService) validateName(name string, selfID uint64) error {
	verr := newValidationError()
	if name == "" {
		verr.add("name", "name is required")
		return verr
	}

	existing, err := s.statusRepo.FindByName(name)
	if err == nil && existing.ID != selfID {
		verr.add("name", "status name already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check status name: %w", err)
	}

	return verr.orNil()
}
