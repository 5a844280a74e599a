package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/adanyl0v/go-tasks-api/internal/models"
	"github.com/adanyl0v/go-tasks-api/internal/repositories"
)

func mustInsert(t *testing.T, repo *TaskRepository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		err := repo.Insert(context.Background(), &models.Task{ID: id, Title: "title " + id})
		if err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
}

func listIDs(t *testing.T, repo *TaskRepository) []string {
	t.Helper()
	tasks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo := NewTaskRepository()

	tasks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestList_KeepsInsertionOrder(t *testing.T) {
	repo := NewTaskRepository()
	mustInsert(t, repo, "c", "a", "b")

	got := listIDs(t, repo)
	if want := []string{"c", "a", "b"}; !equalIDs(got, want) {
		t.Fatalf("ids=%v want=%v", got, want)
	}
}

func TestList_ReturnsCopies(t *testing.T) {
	repo := NewTaskRepository()
	mustInsert(t, repo, "a")

	tasks, _ := repo.List(context.Background())
	tasks[0].Title = "changed"

	tasks, _ = repo.List(context.Background())
	if tasks[0].Title != "title a" {
		t.Fatalf("stored task was mutated through list result: %q", tasks[0].Title)
	}
}

func TestUpdate_Partial(t *testing.T) {
	repo := NewTaskRepository()
	err := repo.Insert(context.Background(), &models.Task{ID: "a", Title: "old", Description: "keep"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	title := "new"
	completed := true
	updated, err := repo.Update(context.Background(), "a", models.TaskUpdate{
		Title:     &title,
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "new" || updated.Description != "keep" || !updated.Completed {
		t.Fatalf("unexpected task after update: %+v", updated)
	}

	tasks, _ := repo.List(context.Background())
	if *tasks[0] != *updated {
		t.Fatalf("stored=%+v returned=%+v", tasks[0], updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := NewTaskRepository()
	mustInsert(t, repo, "a")

	title := "x"
	_, err := repo.Update(context.Background(), "missing", models.TaskUpdate{Title: &title})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}

	tasks, _ := repo.List(context.Background())
	if len(tasks) != 1 || tasks[0].Title != "title a" {
		t.Fatalf("collection changed: %+v", tasks)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		deleteID    string
		wantRemoved int64
		wantIDs     []string
	}{
		{
			name:        "existing",
			ids:         []string{"a", "b", "c"},
			deleteID:    "b",
			wantRemoved: 1,
			wantIDs:     []string{"a", "c"},
		},
		{
			name:        "missing",
			ids:         []string{"a", "b"},
			deleteID:    "z",
			wantRemoved: 0,
			wantIDs:     []string{"a", "b"},
		},
		{
			name:        "every match",
			ids:         []string{"a", "b", "a"},
			deleteID:    "a",
			wantRemoved: 2,
			wantIDs:     []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewTaskRepository()
			mustInsert(t, repo, tt.ids...)

			removed, err := repo.Delete(context.Background(), tt.deleteID)
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if removed != tt.wantRemoved {
				t.Fatalf("removed=%d want=%d", removed, tt.wantRemoved)
			}
			if got := listIDs(t, repo); !equalIDs(got, tt.wantIDs) {
				t.Fatalf("ids=%v want=%v", got, tt.wantIDs)
			}
		})
	}
}

func TestConcurrentInsert(t *testing.T) {
	repo := NewTaskRepository()

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Insert(context.Background(), &models.Task{ID: "x"})
		}()
	}
	wg.Wait()

	if got := len(listIDs(t, repo)); got != n {
		t.Fatalf("len=%d want=%d", got, n)
	}
}
