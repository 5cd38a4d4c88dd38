package repository

import (
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. Labels attached to the model are inserted into
// the membership table in the same operation.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter. Criteria combine with AND; the
// label criterion matches tasks carrying any of the given labels, via an
// EXISTS subquery so a task matching several labels still yields one row.
// Results are ordered by creation time (ID as tiebreak).
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.StatusID != nil {
		query = query.Where("tasks.status_id = ?", *filter.StatusID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.AuthorID != nil {
		query = query.Where("tasks.author_id = ?", *filter.AuthorID)
	}
	if len(filter.LabelIDs) > 0 {
		membershipSubQuery := r.db.Table("task_labels").
			Select("1").
			Where("task_labels.task_id = tasks.id").
			Where("task_labels.label_id IN ?", filter.LabelIDs)
		query = query.Where("EXISTS (?)", membershipSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at ASC, tasks.id ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.
		Preload("Status").
		Preload("Author").
		Preload("Assignee").
		Preload("Labels").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task and replaces its label set
func (r *GormTaskRepository) Update(task *models.Task, labels []models.Label) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Labels").Save(task).Error; err != nil {
			return err
		}

		return tx.Model(task).Association("Labels").Replace(labels)
	})
}

// Delete soft deletes a task and clears its label memberships
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{ID: id}).Association("Labels").Clear(); err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
