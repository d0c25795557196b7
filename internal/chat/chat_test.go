package chat

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/me/studyplan/internal/planner"
	"github.com/me/studyplan/internal/store"
	"github.com/me/studyplan/pkg/model"
)

var refTime = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func testAssistant(t *testing.T) (*Assistant, store.Store) {
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

	p := planner.New(logger, planner.WithClock(func() time.Time { return refTime }))
	a := New(st, p, logger, WithClock(func() time.Time { return refTime }))
	return a, st
}

func seedSlot(t *testing.T, st store.Store) {
	t.Helper()
	slot := &model.RecurringSlot{
		ID: "slot_mon", DayOfWeek: 1, StartHour: 9, EndHour: 12,
		Available: true, CreatedAt: refTime,
	}
	if err := st.CreateSlot(context.Background(), slot); err != nil {
		t.Fatalf("create slot: %v", err)
	}
}

func TestRespondHelp(t *testing.T) {
	a, _ := testAssistant(t)
	reply, err := a.Respond(context.Background(), "help me out")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.ActionType != ActionInfo {
		t.Errorf("action = %s, want info", reply.ActionType)
	}
	if !strings.Contains(reply.Content, "Generate plan") {
		t.Errorf("help text missing commands: %s", reply.Content)
	}
}

func TestRespondAddTask(t *testing.T) {
	a, st := testAssistant(t)
	ctx := context.Background()

	reply, err := a.Respond(ctx, "Add task: Review Chapter 5 for Mathematics")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.ActionType != ActionAddTask {
		t.Fatalf("action = %s, want add_task", reply.ActionType)
	}
	if reply.Task == nil {
		t.Fatal("reply should carry the created task")
	}
	if reply.Task.Title != "Review Chapter 5" || reply.Task.Subject != "Mathematics" {
		t.Errorf("parsed task = %q / %q", reply.Task.Title, reply.Task.Subject)
	}
	if !reply.Task.DueDate.Equal(refTime.AddDate(0, 0, 7)) {
		t.Errorf("due date = %v, want 7 days out", reply.Task.DueDate)
	}

	stored, err := st.GetTask(ctx, reply.Task.ID)
	if err != nil || stored == nil {
		t.Fatalf("task not persisted: %v", err)
	}
}

func TestRespondAddTaskDefaultSubject(t *testing.T) {
	a, _ := testAssistant(t)
	reply, err := a.Respond(context.Background(), "new task: flashcard drill")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.Task == nil || reply.Task.Subject != "General" {
		t.Errorf("subject should default to General, got %+v", reply.Task)
	}
}

func TestRespondAddTaskUnparseable(t *testing.T) {
	a, _ := testAssistant(t)
	reply, err := a.Respond(context.Background(), "add task")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.ActionType != ActionInfo || reply.Task != nil {
		t.Errorf("bare 'add task' should explain usage, got action %s", reply.ActionType)
	}
}

func TestRespondGeneratePlanNoTasks(t *testing.T) {
	a, _ := testAssistant(t)
	reply, err := a.Respond(context.Background(), "generate plan")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.ActionType != ActionInfo || reply.Plan != nil {
		t.Errorf("plan generation without tasks should inform, got %s", reply.ActionType)
	}
}

func TestRespondGeneratePlan(t *testing.T) {
	a, st := testAssistant(t)
	ctx := context.Background()
	seedSlot(t, st)

	task := &model.StudyTask{
		ID: "task_1", Title: "Graph practice", Subject: "CS",
		Difficulty: model.DifficultyHard, Status: model.TaskStatusPending,
		Priority: model.PriorityHigh, EstimatedMinutes: 60,
		DueDate: refTime.AddDate(0, 0, 4), CreatedAt: refTime, UpdatedAt: refTime,
	}
	if err := st.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	reply, err := a.Respond(ctx, "please generate plan")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.ActionType != ActionGeneratePlan {
		t.Fatalf("action = %s, want generate_plan", reply.ActionType)
	}
	if reply.Plan == nil || reply.Plan.TasksIncluded != 1 {
		t.Fatalf("plan missing or wrong: %+v", reply.Plan)
	}

	saved, err := st.LatestPlan(ctx)
	if err != nil || saved == nil || saved.ID != reply.Plan.ID {
		t.Errorf("generated plan not persisted: %v", err)
	}
}

func TestRespondExamSummary(t *testing.T) {
	a, st := testAssistant(t)
	ctx := context.Background()

	exam := &model.Exam{
		ID: "exam_1", Title: "Physics Final", Subject: "Physics",
		Date: refTime.AddDate(0, 0, 5), Weight: 40, CreatedAt: refTime,
	}
	if err := st.CreateExam(ctx, exam); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	reply, err := a.Respond(ctx, "show upcoming exams")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.Contains(reply.Content, "Physics Final") || !strings.Contains(reply.Content, "weight 40") {
		t.Errorf("exam summary incomplete: %s", reply.Content)
	}
}

func TestRespondTaskSummary(t *testing.T) {
	a, st := testAssistant(t)
	ctx := context.Background()

	urgent := &model.StudyTask{
		ID: "task_urgent", Title: "Cram everything", Subject: "All",
		Difficulty: model.DifficultyHard, Status: model.TaskStatusPending,
		Priority: model.PriorityUrgent, EstimatedMinutes: 60,
		DueDate: refTime.AddDate(0, 0, 1), CreatedAt: refTime, UpdatedAt: refTime,
	}
	if err := st.CreateTask(ctx, urgent); err != nil {
		t.Fatalf("create task: %v", err)
	}

	reply, err := a.Respond(ctx, "show my tasks")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.Contains(reply.Content, "Pending: 1") {
		t.Errorf("summary missing pending count: %s", reply.Content)
	}
	if !strings.Contains(reply.Content, "Cram everything") {
		t.Errorf("summary missing urgent task: %s", reply.Content)
	}
}

func TestRespondTaskSummaryPastDue(t *testing.T) {
	a, st := testAssistant(t)
	ctx := context.Background()

	late := &model.StudyTask{
		ID: "task_late", Title: "Lab writeup", Subject: "Chemistry",
		Difficulty: model.DifficultyMedium, Status: model.TaskStatusPending,
		Priority: model.PriorityMedium, EstimatedMinutes: 45,
		DueDate: refTime.AddDate(0, 0, -1), CreatedAt: refTime, UpdatedAt: refTime,
	}
	if err := st.CreateTask(ctx, late); err != nil {
		t.Fatalf("create task: %v", err)
	}
	done := &model.StudyTask{
		ID: "task_done", Title: "Old homework", Subject: "Chemistry",
		Difficulty: model.DifficultyEasy, Status: model.TaskStatusCompleted,
		Priority: model.PriorityLow, EstimatedMinutes: 30,
		DueDate: refTime.AddDate(0, 0, -3), CreatedAt: refTime, UpdatedAt: refTime,
	}
	if err := st.CreateTask(ctx, done); err != nil {
		t.Fatalf("create task: %v", err)
	}

	reply, err := a.Respond(ctx, "show my tasks")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !strings.Contains(reply.Content, "Past due:") || !strings.Contains(reply.Content, "Lab writeup") {
		t.Errorf("summary missing past-due section: %s", reply.Content)
	}
	// Completed tasks are not flagged, however late they finished.
	if strings.Contains(reply.Content, "Old homework") {
		t.Errorf("completed task flagged as past due: %s", reply.Content)
	}
}

func TestRespondGreeting(t *testing.T) {
	a, _ := testAssistant(t)
	reply, err := a.Respond(context.Background(), "hello there")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	// refTime is 08:00.
	if !strings.HasPrefix(reply.Content, "Good morning") {
		t.Errorf("greeting = %s, want morning greeting", reply.Content)
	}
}

func TestRespondFallback(t *testing.T) {
	a, _ := testAssistant(t)
	reply, err := a.Respond(context.Background(), "what is the meaning of life")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if reply.ActionType != ActionInfo || !strings.Contains(reply.Content, "help") {
		t.Errorf("fallback should point at help: %s", reply.Content)
	}
}
