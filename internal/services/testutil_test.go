package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	statusRepo repository.StatusRepository
	labelRepo  repository.LabelRepository
	taskRepo   repository.TaskRepository
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Label{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		statusRepo: repository.NewStatusRepository(db),
		labelRepo:  repository.NewLabelRepository(db),
		taskRepo:   repository.NewTaskRepository(db),
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Fixture123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env serviceTestEnv) createStatus(t *testing.T, name string) *models.Status {
	t.Helper()

	status := &models.Status{Name: name}
	require.NoError(t, env.db.Create(status).Error)
	return status
}

func (env serviceTestEnv) createLabel(t *testing.T, name string) *models.Label {
	t.Helper()

	label := &models.Label{Name: name}
	require.NoError(t, env.db.Create(label).Error)
	return label
}

func (env serviceTestEnv) createTask(t *testing.T, name string, statusID, authorID uint64, labels ...models.Label) *models.Task {
	t.Helper()

	task := &models.Task{
		Name:     name,
		StatusID: statusID,
		AuthorID: authorID,
		Labels:   labels,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func ptr[T any](v T) *T {
	return &v
}
