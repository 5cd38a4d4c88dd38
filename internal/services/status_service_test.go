package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusService_CreateStatus(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatusService(env.statusRepo)

	status, err := svc.CreateStatus("in progress")
	require.NoError(t, err)
	require.NotZero(t, status.ID)
	require.Equal(t, "in progress", status.Name)
}

func TestStatusService_CreateStatus_DuplicateName(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatusService(env.statusRepo)

	env.createStatus(t, "done")

	_, err := svc.CreateStatus("done")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "name")
}

func TestStatusService_UpdateStatus_KeepsOwnName(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatusService(env.statusRepo)

	status := env.createStatus(t, "done")

	// Renaming to its current name is not a conflict
	updated, err := svc.UpdateStatus(status.ID, "done")
	require.NoError(t, err)
	require.Equal(t, "done", updated.Name)

	updated, err = svc.UpdateStatus(status.ID, "finished")
	require.NoError(t, err)
	require.Equal(t, "finished", updated.Name)
}

func TestStatusService_DeleteStatus_BlockedByDependentTask(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatusService(env.statusRepo)

	author := env.createUser(t, "author")
	status := env.createStatus(t, "busy")
	env.createTask(t, "task", status.ID, author.ID)

	err := svc.DeleteStatus(status.ID)
	require.True(t, errors.Is(err, ErrStatusInUse))

	// The status survives the rejected delete
	_, err = svc.GetStatus(status.ID)
	require.NoError(t, err)
}

func TestStatusService_DeleteStatus_SoftDeletedTasksStillBlock(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatusService(env.statusRepo)
	taskSvc := newTaskService(env)

	author := env.createUser(t, "author")
	status := env.createStatus(t, "busy")
	task := env.createTask(t, "task", status.ID, author.ID)

	require.NoError(t, taskSvc.DeleteTask(task.ID, &author.ID))

	// The soft-deleted task keeps its status_id, so the status stays pinned.
	err := svc.DeleteStatus(status.ID)
	require.True(t, errors.Is(err, ErrStatusInUse))
}

func TestStatusService_DeleteStatus_Unreferenced(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatusService(env.statusRepo)

	status := env.createStatus(t, "idle")

	require.NoError(t, svc.DeleteStatus(status.ID))

	_, err := svc.GetStatus(status.ID)
	require.True(t, errors.Is(err, ErrStatusNotFound))
}

func TestStatusService_GetStatus_NotFound(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc := NewStatusService(env.statusRepo)

	_, err := svc.GetStatus(12345)
	require.True(t, errors.Is(err, ErrStatusNotFound))
}
