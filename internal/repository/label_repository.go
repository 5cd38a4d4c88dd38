package repository

import (
	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByIDs returns the labels for the given IDs
func (r *GormLabelRepository) FindByIDs(ids []uint64) ([]models.Label, error) {
	if len(ids) == 0 {
		return []models.Label{}, nil
	}
	var labels []models.Label
	if err := r.db.Where("id IN ?", ids).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// List returns all labels ordered by ID
func (r *GormLabelRepository) List() ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Order("id ASC").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update updates a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// Delete removes a label. Membership rows of soft-deleted tasks do not count
// as dependents.
func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		count, err := countLabelTasks(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrHasDependentTasks
		}

		return tx.Delete(&models.Label{}, id).Error
	})
}

// CountTasks counts tasks carrying the label
func (r *GormLabelRepository) CountTasks(labelID uint64) (int64, error) {
	return countLabelTasks(r.db, labelID)
}

func countLabelTasks(db *gorm.DB, labelID uint64) (int64, error) {
	var count int64
	err := db.Table("task_labels").
		Joins("JOIN tasks ON tasks.id = task_labels.task_id").
		Where("task_labels.label_id = ?", labelID).
		Where("tasks.deleted_at IS NULL").
		Count(&count).Error
	return count, err
}
