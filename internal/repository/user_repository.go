package repository

import (
	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by ID
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user. Authored tasks block the delete; tasks merely
// assigned to the user get their assignee cleared instead. Both checks run
// unscoped: soft-deleted tasks keep their author_id and assignee_id, so they
// still pin the user row under the foreign keys.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var authored int64
		if err := tx.Unscoped().Model(&models.Task{}).
			Where("author_id = ?", id).
			Count(&authored).Error; err != nil {
			return err
		}
		if authored > 0 {
			return ErrHasDependentTasks
		}

		if err := tx.Unscoped().Model(&models.Task{}).
			Where("assignee_id = ?", id).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

// CountAuthoredTasks counts tasks authored by the user, soft-deleted ones
// included
func (r *GormUserRepository) CountAuthoredTasks(userID uint64) (int64, error) {
	var count int64
	err := r.db.Unscoped().Model(&models.Task{}).
		Where("author_id = ?", userID).
		Count(&count).Error
	return count, err
}
