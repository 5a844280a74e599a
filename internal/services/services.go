package services

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-tasks-api/internal/models"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskAlreadyExists  = errors.New("task already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type TaskService interface {
	// ListTasks returns every task in the order they were created.
	// An empty collection yields an empty, non-nil slice.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// CreateTask appends a new uncompleted task with an id
	// derived from the current time.
	//
	// It returns ErrTaskAlreadyExists if the storage rejects
	// the generated id as a duplicate.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask replaces the supplied fields of the task and
	// keeps the rest.
	//
	// It returns ErrTaskNotFound if the task doesn't exist,
	// in which case nothing is changed.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task with the given id.
	//
	// Deleting a missing task succeeds unless the service was
	// created with strict deletes, then it returns ErrTaskNotFound.
	DeleteTask(ctx context.Context, id string) error

	// Ping reports whether the underlying storage is reachable.
	Ping(ctx context.Context) error
}

type CreateTaskParams struct {
	Title       string
	Description string
}

type UpdateTaskParams struct {
	ID          string
	Title       *string
	Description *string
	Completed   *bool
}

type TaskServiceOptions struct {
	// StrictDelete makes DeleteTask report ErrTaskNotFound
	// when nothing was removed.
	StrictDelete bool
}
