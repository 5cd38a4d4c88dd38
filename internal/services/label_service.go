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

// LabelService handles label business logic. Label names are not unique;
// otherwise labels follow the same lifecycle rules as statuses.
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService.
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{
		labelRepo: labelRepo,
	}
}

// ListLabels returns all labels.
func (s *LabelService) ListLabels() ([]models.Label, error) {
	labels, err := s.labelRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// GetLabel retrieves a label by ID.
func (s *LabelService) GetLabel(id uint64) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	return label, nil
}

// CreateLabel creates a new label.
func (s *LabelService) CreateLabel(name string) (*models.Label, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr := newValidationError()
		verr.add("name", "name is required")
		return nil, verr
	}

	label := &models.Label{Name: name}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	return label, nil
}

// UpdateLabel renames a label.
func (s *LabelService) UpdateLabel(id uint64, name string) (*models.Label, error) {
	label, err := s.GetLabel(id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		verr := newValidationError()
		verr.add("name", "name is required")
		return nil, verr
	}

	label.Name = name
	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	return label, nil
}

// DeleteLabel removes a label. The delete is rejected while any task still
// carries it.
func (s *LabelService) DeleteLabel(id uint64) error {
	if _, err := s.GetLabel(id); err != nil {
		return err
	}

	dependents, err := s.labelRepo.CountTasks(id)
	if err != nil {
		return fmt.Errorf("failed to count dependent tasks: %w", err)
	}
	if decision := authz.RequireNoDependents(dependents); !decision.Allowed {
		return ErrLabelInUse
	}

	// The repository re-verifies inside the delete transaction, closing the
	// race with a concurrently created task.
	if err := s.labelRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrHasDependentTasks) {
			return ErrLabelInUse
		}
		return fmt.Errorf("failed to delete label: %w", err)
	}

	return nil
}
