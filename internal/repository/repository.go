package repository

import (
	"errors"

	"github.com/yukikurage/task-tracker/internal/models"
)

// ErrHasDependentTasks is returned by a delete when tasks still reference the
// record. The check runs inside the delete transaction, so a task created
// concurrently cannot slip past a stale read.
var ErrHasDependentTasks = errors.New("repository: record is referenced by existing tasks")

// TaskFilter holds the optional criteria for listing tasks. All supplied
// criteria are AND-combined; LabelIDs matches tasks carrying ANY of the
// given labels.
type TaskFilter struct {
	StatusID   *uint64
	AssigneeID *uint64
	LabelIDs   []uint64
	AuthorID   *uint64
	Page       int
	PageSize   int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users ordered by ID
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete removes a user. It fails with ErrHasDependentTasks while the
	// user authors any task, soft-deleted ones included; assignments are
	// cleared in the same transaction.
	Delete(id uint64) error

	// CountAuthoredTasks counts tasks authored by the user, soft-deleted
	// ones included
	CountAuthoredTasks(userID uint64) (int64, error)
}

// StatusRepository defines the interface for status data access
type StatusRepository interface {
	// Create creates a new status
	Create(status *models.Status) error

	// FindByID finds a status by ID
	FindByID(id uint64) (*models.Status, error)

	// FindByName finds a status by its unique name
	FindByName(name string) (*models.Status, error)

	// List returns all statuses ordered by ID
	List() ([]models.Status, error)

	// Update updates a status
	Update(status *models.Status) error

	// Delete removes a status, failing with ErrHasDependentTasks while any
	// task references it, soft-deleted ones included
	Delete(id uint64) error

	// CountTasks counts tasks referencing the status, soft-deleted ones
	// included
	CountTasks(statusID uint64) (int64, error)
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label by ID
	FindByID(id uint64) (*models.Label, error)

	// FindByIDs returns the labels for the given IDs
	FindByIDs(ids []uint64) ([]models.Label, error)

	// List returns all labels ordered by ID
	List() ([]models.Label, error)

	// Update updates a label
	Update(label *models.Label) error

	// Delete removes a label, failing with ErrHasDependentTasks while any
	// task carries it
	Delete(id uint64) error

	// CountTasks counts tasks carrying the label
	CountTasks(labelID uint64) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task together with its label memberships
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, ordered by creation time
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task and replaces its label set
	Update(task *models.Task, labels []models.Label) error

	// Delete soft deletes a task and clears its label memberships
	Delete(id uint64) error
}
