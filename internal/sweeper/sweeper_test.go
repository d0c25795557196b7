package sweeper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/me/studyplan/internal/store"
	"github.com/me/studyplan/pkg/model"
)

func testLoop(t *testing.T) (*Loop, store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewLoop(st, DefaultConfig(), logger), st
}

func addTask(t *testing.T, st store.Store, id string, status model.TaskStatus, due time.Time) {
	t.Helper()
	now := time.Now().UTC()
	task := &model.StudyTask{
		ID:               id,
		Title:            id,
		Difficulty:       model.DifficultyMedium,
		Status:           status,
		Priority:         model.PriorityMedium,
		EstimatedMinutes: 60,
		DueDate:          due,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := st.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("create task %s: %v", id, err)
	}
}

func TestTickMarksOverdue(t *testing.T) {
	loop, st := testLoop(t)
	ctx := context.Background()
	now := time.Now().UTC()

	addTask(t, st, "task_late", model.TaskStatusPending, now.AddDate(0, 0, -1))
	addTask(t, st, "task_started_late", model.TaskStatusInProgress, now.AddDate(0, 0, -2))
	addTask(t, st, "task_future", model.TaskStatusPending, now.AddDate(0, 0, 3))

	if err := loop.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}

	for _, id := range []string{"task_late", "task_started_late"} {
		task, err := st.GetTask(ctx, id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if task.Status != model.TaskStatusOverdue {
			t.Errorf("%s status = %s, want overdue", id, task.Status)
		}
	}

	future, _ := st.GetTask(ctx, "task_future")
	if future.Status != model.TaskStatusPending {
		t.Errorf("future task status = %s, want pending", future.Status)
	}
}

func TestTickLeavesCompletedAlone(t *testing.T) {
	loop, st := testLoop(t)
	ctx := context.Background()
	now := time.Now().UTC()

	addTask(t, st, "task_done", model.TaskStatusCompleted, now.AddDate(0, 0, -5))

	if err := loop.Tick(ctx); err != nil {
		t.Fatalf("tick: %v", err)
	}
	task, _ := st.GetTask(ctx, "task_done")
	if task.Status != model.TaskStatusCompleted {
		t.Errorf("completed task status = %s, want completed", task.Status)
	}
}

func TestTickIdempotent(t *testing.T) {
	loop, st := testLoop(t)
	ctx := context.Background()

	addTask(t, st, "task_late", model.TaskStatusPending, time.Now().UTC().AddDate(0, 0, -1))

	if err := loop.Tick(ctx); err != nil {
		t.Fatalf("first tick: %v", err)
	}
	// A second tick sees no pending/in_progress due tasks and does nothing.
	if err := loop.Tick(ctx); err != nil {
		t.Fatalf("second tick: %v", err)
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	loop, _ := testLoop(t)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Start(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
