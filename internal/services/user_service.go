package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-tracker/internal/authz"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles the user directory and self-service profile mutations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns the user directory.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUserInput represents input for updating a user profile. Password and
// its confirmation are both optional: leaving both empty keeps the current
// credential; filling either makes the full password policy apply.
type UpdateUserInput struct {
	Username        *string
	FirstName       *string
	LastName        *string
	Password        string
	PasswordConfirm string
}

// UpdateUser updates a user profile. Only the user themselves may do this.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput, actorID *uint64) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if decision := authz.RequireOwner(actorID, user.ID); !decision.Allowed {
		return nil, guardError(decision)
	}

	verr := newValidationError()

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			verr.add("username", "username is required")
		} else if username != user.Username {
			if _, err := s.userRepo.FindByUsername(username); err == nil {
				verr.add("username", "username already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			user.Username = username
		}
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}

	changingPassword := input.Password != "" || input.PasswordConfirm != ""
	if changingPassword {
		validatePassword(input.Password, input.PasswordConfirm, verr)
	}

	// A failed validation applies nothing, including the name fields.
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if changingPassword {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser removes a user. Only the user themselves may do this, and the
// delete is rejected while they author any task. Tasks merely assigned to
// the user keep existing with the assignee cleared.
func (s *UserService) DeleteUser(id uint64, actorID *uint64) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	if decision := authz.RequireOwner(actorID, user.ID); !decision.Allowed {
		return guardError(decision)
	}

	authored, err := s.userRepo.CountAuthoredTasks(id)
	if err != nil {
		return fmt.Errorf("failed to count authored tasks: %w", err)
	}
	if decision := authz.RequireNoDependents(authored); !decision.Allowed {
		return ErrUserAuthorsTasks
	}

	// The repository re-verifies inside the delete transaction, closing the
	// race with a concurrently created task.
	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrHasDependentTasks) {
			return ErrUserAuthorsTasks
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// guardError maps a denied guard decision to the matching sentinel error.
func guardError(decision authz.Decision) error {
	switch decision.Reason {
	case authz.ReasonNotAuthenticated:
		return ErrNotAuthenticated
	case authz.ReasonNotOwner:
		return ErrNotOwner
	default:
		return fmt.Errorf("operation denied: %s", decision.Reason)
	}
}
