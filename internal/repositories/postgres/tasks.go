package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasks-api/internal/models"
	"github.com/adanyl0v/go-tasks-api/internal/repositories"
)

type TaskRepository struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskRepository(logger zerolog.Logger, pgPool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		logger: logger,
		pgPool: pgPool,
	}
}

// EnsureSchema creates the tasks table if it does not exist yet.
func (r *TaskRepository) EnsureSchema(ctx context.Context) error {
	const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id          TEXT PRIMARY KEY,
    title       TEXT    NOT NULL,
    description TEXT    NOT NULL,
    completed   BOOLEAN NOT NULL DEFAULT FALSE
)
`
	_, err := r.pgPool.Exec(ctx, createTasksTableQuery)
	if err != nil {
		return fmt.Errorf("failed to create tasks table: %w", err)
	}
	r.logger.Debug().Msg("ensured tasks table")
	return nil
}

func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	const selectTasksQuery = `
SELECT id,
       title,
       description,
       completed
FROM tasks
ORDER BY id
`
	rows, err := r.pgPool.Query(ctx, selectTasksQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := new(models.Task)
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   completed)
VALUES ($1, $2, $3, $4)
`
	_, err := r.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		task.Completed,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return repositories.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

// storableID reports whether the id can be sent as a TEXT parameter.
// Postgres rejects invalid UTF-8 and NUL bytes, so no stored task
// can have such an id.
func storableID(id string) bool {
	return utf8.ValidString(id) && !strings.ContainsRune(id, 0)
}

func (r *TaskRepository) Update(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	if !storableID(id) {
		return nil, repositories.ErrNotFound
	}
	task := &models.Task{ID: id}

	const updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    completed = COALESCE($3, completed)
WHERE id = $4
RETURNING title, description, completed
`
	err := r.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		update.Title,
		update.Description,
		update.Completed,
		task.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Completed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (int64, error) {
	if !storableID(id) {
		return 0, nil
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted task")
	return tag.RowsAffected(), nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.pgPool.Ping(ctx)
}
