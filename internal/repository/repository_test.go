package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Label{},
		&models.Task{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestStatusRepository_CountTasks_Query(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatusRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `tasks` WHERE status_id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := repo.CountTasks(7)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_CountTasks_ExcludesDeletedTasks(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLabelRepository(db)

	// The membership count joins tasks so soft-deleted tasks don't hold the
	// label hostage.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `task_labels` JOIN tasks ON tasks.id = task_labels.task_id WHERE task_labels.label_id = ? AND tasks.deleted_at IS NULL")).
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	count, err := repo.CountTasks(4)
	require.NoError(t, err)
	require.Zero(t, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountAuthoredTasks_Query(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `tasks` WHERE author_id = ?")).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	count, err := repo.CountAuthoredTasks(2)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Delete_RechecksDependentsInTransaction(t *testing.T) {
	db := setupSQLiteDB(t)
	statusRepo := NewStatusRepository(db)

	user := models.User{Username: "author", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	status := models.Status{Name: "busy"}
	require.NoError(t, db.Create(&status).Error)
	task := models.Task{Name: "t", StatusID: status.ID, AuthorID: user.ID}
	require.NoError(t, db.Create(&task).Error)

	require.ErrorIs(t, statusRepo.Delete(status.ID), ErrHasDependentTasks)

	// Status row untouched by the rejected delete
	var count int64
	db.Model(&models.Status{}).Where("id = ?", status.ID).Count(&count)
	require.EqualValues(t, 1, count)

	// Only hard deletion of the dependent task frees the status
	require.NoError(t, db.Unscoped().Delete(&models.Task{}, task.ID).Error)
	require.NoError(t, statusRepo.Delete(status.ID))
}

func TestProtectedDeletes_SoftDeletedTasksStillCount(t *testing.T) {
	db := setupSQLiteDB(t)
	taskRepo := NewTaskRepository(db)
	statusRepo := NewStatusRepository(db)
	userRepo := NewUserRepository(db)

	user := models.User{Username: "author", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	status := models.Status{Name: "new"}
	require.NoError(t, db.Create(&status).Error)
	task := models.Task{Name: "t", StatusID: status.ID, AuthorID: user.ID}
	require.NoError(t, db.Create(&task).Error)

	require.NoError(t, taskRepo.Delete(task.ID))

	// The soft-deleted row keeps its status_id and author_id, so both
	// protected deletes stay blocked instead of leaving dangling references.
	count, err := statusRepo.CountTasks(status.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.ErrorIs(t, statusRepo.Delete(status.ID), ErrHasDependentTasks)

	count, err = userRepo.CountAuthoredTasks(user.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.ErrorIs(t, userRepo.Delete(user.ID), ErrHasDependentTasks)
}

func TestTaskRepository_Delete_ClearsMemberships(t *testing.T) {
	db := setupSQLiteDB(t)
	taskRepo := NewTaskRepository(db)

	user := models.User{Username: "author", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	status := models.Status{Name: "new"}
	require.NoError(t, db.Create(&status).Error)
	label := models.Label{Name: "sticky"}
	require.NoError(t, db.Create(&label).Error)
	task := models.Task{Name: "t", StatusID: status.ID, AuthorID: user.ID, Labels: []models.Label{label}}
	require.NoError(t, db.Create(&task).Error)

	require.NoError(t, taskRepo.Delete(task.ID))

	var memberships int64
	db.Table("task_labels").Where("task_id = ?", task.ID).Count(&memberships)
	require.Zero(t, memberships)

	// The label itself survives
	var labels int64
	db.Model(&models.Label{}).Count(&labels)
	require.EqualValues(t, 1, labels)
}
