package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasks-api/internal/models"
)

type fakeRepository struct {
	err   error
	calls int
}

func (f *fakeRepository) List(context.Context) ([]*models.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Task{{ID: "a"}}, nil
}

func (f *fakeRepository) Insert(context.Context, *models.Task) error {
	f.calls++
	return f.err
}

func (f *fakeRepository) Update(_ context.Context, id string, _ models.TaskUpdate) (*models.Task, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.Task{ID: id}, nil
}

func (f *fakeRepository) Delete(context.Context, string) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

func (f *fakeRepository) Ping(context.Context) error { return f.err }

func newTestBreaker(next TaskRepository) TaskRepository {
	return WithBreaker(zerolog.Nop(), next, BreakerSettings{
		Name:        "test",
		MaxFailures: 2,
		Timeout:     time.Minute,
	})
}

func TestBreaker_PassesResultsThrough(t *testing.T) {
	repo := newTestBreaker(&fakeRepository{})
	ctx := context.Background()

	tasks, err := repo.List(ctx)
	if err != nil || len(tasks) != 1 {
		t.Fatalf("list: tasks=%v err=%v", tasks, err)
	}
	task, err := repo.Update(ctx, "x", models.TaskUpdate{})
	if err != nil || task.ID != "x" {
		t.Fatalf("update: task=%v err=%v", task, err)
	}
	removed, err := repo.Delete(ctx, "x")
	if err != nil || removed != 1 {
		t.Fatalf("delete: removed=%d err=%v", removed, err)
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	fake := &fakeRepository{err: errors.New("connection refused")}
	repo := newTestBreaker(fake)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := repo.List(ctx)
		if err == nil || errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d: err=%v want backend error", i, err)
		}
	}

	err := repo.Insert(ctx, &models.Task{ID: "a"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err=%v want ErrUnavailable", err)
	}
	if fake.calls != 2 {
		t.Fatalf("backend calls=%d want 2", fake.calls)
	}
}

func TestBreaker_NotFoundIsNotAFailure(t *testing.T) {
	fake := &fakeRepository{err: ErrNotFound}
	repo := newTestBreaker(fake)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Update(ctx, "missing", models.TaskUpdate{})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d: err=%v want ErrNotFound", i, err)
		}
	}
	if fake.calls != 5 {
		t.Fatalf("backend calls=%d want 5", fake.calls)
	}
}

func TestBreaker_CanceledCallsDoNotOpen(t *testing.T) {
	fake := &fakeRepository{err: context.Canceled}
	repo := newTestBreaker(fake)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.List(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("call %d: err=%v want context.Canceled", i, err)
		}
	}

	fake.err = nil
	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list after cancellations: err=%v unavailable=%t", err, errors.Is(err, ErrUnavailable))
	}
	if len(tasks) != 1 {
		t.Fatalf("len=%d want 1", len(tasks))
	}
}

func TestBreaker_DeadlineExceededOpens(t *testing.T) {
	fake := &fakeRepository{err: context.DeadlineExceeded}
	repo := newTestBreaker(fake)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = repo.List(ctx)
	}

	fake.err = nil
	_, err := repo.List(ctx)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err=%v want ErrUnavailable", err)
	}
}
