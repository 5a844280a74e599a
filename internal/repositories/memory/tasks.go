package memory

import (
	"context"
	"sync"

	"github.com/adanyl0v/go-tasks-api/internal/models"
	"github.com/adanyl0v/go-tasks-api/internal/repositories"
)

// TaskRepository keeps tasks in an ordered slice that lives as long as
// the process does.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []models.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make([]models.Task, 0)}
}

func (r *TaskRepository) List(_ context.Context) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Task, len(r.tasks))
	for i := range r.tasks {
		task := r.tasks[i]
		out[i] = &task
	}
	return out, nil
}

// Insert does not check for duplicate ids.
func (r *TaskRepository) Insert(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *TaskRepository) Update(_ context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].ID != id {
			continue
		}
		update.Apply(&r.tasks[i])
		task := r.tasks[i]
		return &task, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *TaskRepository) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.tasks[:0]
	for _, task := range r.tasks {
		if task.ID != id {
			kept = append(kept, task)
		}
	}
	removed := int64(len(r.tasks) - len(kept))
	clear(r.tasks[len(kept):])
	r.tasks = kept
	return removed, nil
}

func (r *TaskRepository) Ping(_ context.Context) error {
	return nil
}
