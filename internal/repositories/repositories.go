package repositories

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-tasks-api/internal/models"
)

var (
	ErrNotFound    = errors.New("task not found")
	ErrDuplicateID = errors.New("duplicate task id")
	ErrUnavailable = errors.New("storage unavailable")
)

// TaskRepository stores the ordered task collection.
//
// Implementations must be safe for concurrent use.
type TaskRepository interface {
	// List returns every task in insertion order.
	// It never returns a nil slice on success.
	List(ctx context.Context) ([]*models.Task, error)

	// Insert appends the task to the collection.
	//
	// Backends that enforce unique ids return ErrDuplicateID
	// on a collision.
	Insert(ctx context.Context, task *models.Task) error

	// Update applies the supplied fields to the task with the
	// given id and returns the result. The lookup and the write
	// happen atomically.
	//
	// It returns ErrNotFound if no task has the given id.
	Update(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error)

	// Delete removes every task with the given id and reports
	// how many were removed. Removing nothing is not an error.
	Delete(ctx context.Context, id string) (int64, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
