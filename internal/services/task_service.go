package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasks-api/internal/models"
	"github.com/adanyl0v/go-tasks-api/internal/repositories"
)

type taskServiceImpl struct {
	logger       zerolog.Logger
	repo         repositories.TaskRepository
	newID        func() (string, error)
	strictDelete bool
}

func NewTaskService(
	logger zerolog.Logger,
	repo repositories.TaskRepository,
	opts TaskServiceOptions,
) TaskService {
	return &taskServiceImpl{
		logger:       logger,
		repo:         repo,
		newID:        newTaskID,
		strictDelete: opts.StrictDelete,
	}
}

// newTaskID returns a UUIDv7, which embeds the current unix time
// in milliseconds and sorts in creation order.
func newTaskID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, translateError(err)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	taskID, err := s.newID()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task id")
		return nil, err
	}

	task := &models.Task{
		ID:          taskID,
		Title:       params.Title,
		Description: params.Description,
		Completed:   false,
	}

	err = s.repo.Insert(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to insert task")
		return nil, translateError(err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	update := models.TaskUpdate{
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
	}
	if update.IsEmpty() {
		s.logger.Warn().
			Str("task_id", params.ID).
			Msg("no fields to update")
	}

	task, err := s.repo.Update(ctx, params.ID, update)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error().
				Str("task_id", params.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		return nil, translateError(err)
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return translateError(err)
	}

	if removed == 0 {
		s.logger.Warn().
			Str("task_id", id).
			Bool("strict", s.strictDelete).
			Msg("task not found")
		if s.strictDelete {
			return ErrTaskNotFound
		}
		return nil
	}

	s.logger.Info().
		Str("task_id", id).
		Int64("affected", removed).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) Ping(ctx context.Context) error {
	err := s.repo.Ping(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to ping storage")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrTaskNotFound
	case errors.Is(err, repositories.ErrDuplicateID):
		return ErrTaskAlreadyExists
	case errors.Is(err, repositories.ErrUnavailable):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	default:
		return err
	}
}
