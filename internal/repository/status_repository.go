package repository

import (
	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

// GormStatusRepository is a GORM implementation of StatusRepository
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &GormStatusRepository{db: db}
}

// Create creates a new status
func (r *GormStatusRepository) Create(status *models.Status) error {
	return r.db.Create(status).Error
}

// FindByID finds a status by ID
func (r *GormStatusRepository) FindByID(id uint64) (*models.Status, error) {
	var status models.Status
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// FindByName finds a status by its unique name
func (r *GormStatusRepository) FindByName(name string) (*models.Status, error) {
	var status models.Status
	if err := r.db.Where("name = ?", name).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// List returns all statuses ordered by ID
func (r *GormStatusRepository) List() ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// Update updates a status
func (r *GormStatusRepository) Update(status *models.Status) error {
	return r.db.Save(status).Error
}

// Delete removes a status. The dependent check runs inside the transaction
// so a concurrently created task cannot invalidate it. Soft-deleted tasks
// keep their status_id, so they count as dependents too; otherwise the
// foreign key would reject the delete anyway.
func (r *GormStatusRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Unscoped().Model(&models.Task{}).
			Where("status_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrHasDependentTasks
		}

		return tx.Delete(&models.Status{}, id).Error
	})
}

// CountTasks counts tasks referencing the status, soft-deleted ones included
func (r *GormStatusRepository) CountTasks(statusID uint64) (int64, error) {
	var count int64
	err := r.db.Unscoped().Model(&models.Task{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count, err
}
