package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/adanyl0v/go-tasks-api/internal/models"
)

type BreakerSettings struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
}

type breakerRepository struct {
	next    TaskRepository
	breaker *gobreaker.CircuitBreaker
}

// WithBreaker wraps the repository in a circuit breaker. While the breaker
// is open every call fails fast with ErrUnavailable.
//
// ErrNotFound and ErrDuplicateID are answers from a healthy backend and
// do not count as failures. Neither does context.Canceled, which means the
// caller went away. context.DeadlineExceeded does count: the backend did
// not answer in time.
func WithBreaker(logger zerolog.Logger, next TaskRepository, settings BreakerSettings) TaskRepository {
	maxFailures := settings.MaxFailures
	return &breakerRepository{
		next: next,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        settings.Name,
			MaxRequests: 1,
			Timeout:     settings.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: func(err error) bool {
				return err == nil ||
					errors.Is(err, ErrNotFound) ||
					errors.Is(err, ErrDuplicateID) ||
					errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker changed state")
			},
		}),
	}
}

func (r *breakerRepository) List(ctx context.Context) ([]*models.Task, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return result.([]*models.Task), nil
}

func (r *breakerRepository) Insert(ctx context.Context, task *models.Task) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, r.next.Insert(ctx, task)
	})
	return breakerError(err)
}

func (r *breakerRepository) Update(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.next.Update(ctx, id, update)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return result.(*models.Task), nil
}

func (r *breakerRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.breaker.Execute(func() (any, error) {
		return r.next.Delete(ctx, id)
	})
	if err != nil {
		return 0, breakerError(err)
	}
	return result.(int64), nil
}

// Ping bypasses the breaker so readiness reflects the backend itself.
func (r *breakerRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
