package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/me/studyplan/pkg/model"
)

// Seed loads a small demo dataset (exams, tasks, and a weekly availability
// grid) relative to now. It is a no-op when tasks already exist, so it is
// safe to pass -seed on every server start.
func Seed(ctx context.Context, st Store, now time.Time) error {
	existing, _, err := st.ListTasks(ctx, model.ListOptions{Limit: 1})
	if err != nil {
		return fmt.Errorf("check existing tasks: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	exams := []*model.Exam{
		{
			Title:   "Calculus II Midterm",
			Subject: "Mathematics",
			Date:    now.AddDate(0, 0, 14),
			Weight:  30,
			Topics:  []string{"Integration", "Differential Equations", "Series"},
		},
		{
			Title:   "Physics Final",
			Subject: "Physics",
			Date:    now.AddDate(0, 0, 21),
			Weight:  40,
			Topics:  []string{"Thermodynamics", "Electromagnetism", "Quantum Basics"},
		},
		{
			Title:   "Data Structures Quiz",
			Subject: "Computer Science",
			Date:    now.AddDate(0, 0, 7),
			Weight:  15,
			Topics:  []string{"Trees", "Graphs", "Hash Tables"},
		},
	}
	for _, exam := range exams {
		exam.ID = "exam_" + uuid.New().String()
		exam.CreatedAt = now
		if err := st.CreateExam(ctx, exam); err != nil {
			return fmt.Errorf("seed exam %s: %w", exam.Title, err)
		}
	}

	calculus, physics, dataStructures := exams[0].ID, exams[1].ID, exams[2].ID

	yesterday := now.AddDate(0, 0, -1)
	tasks := []*model.StudyTask{
		{
			Title: "Review Integration Techniques", Subject: "Mathematics",
			Difficulty: model.DifficultyHard, Status: model.TaskStatusPending, Priority: model.PriorityHigh,
			EstimatedMinutes: 90, DueDate: now.AddDate(0, 0, 10), RelatedExamID: calculus,
		},
		{
			Title: "Practice Differential Equations", Subject: "Mathematics",
			Difficulty: model.DifficultyHard, Status: model.TaskStatusInProgress, Priority: model.PriorityUrgent,
			EstimatedMinutes: 120, DueDate: now.AddDate(0, 0, 8), RelatedExamID: calculus,
		},
		{
			Title: "Read Thermodynamics Chapter", Subject: "Physics",
			Difficulty: model.DifficultyMedium, Status: model.TaskStatusPending, Priority: model.PriorityMedium,
			EstimatedMinutes: 60, DueDate: now.AddDate(0, 0, 15), RelatedExamID: physics,
		},
		{
			Title: "Complete Binary Tree Exercises", Subject: "Computer Science",
			Difficulty: model.DifficultyMedium, Status: model.TaskStatusCompleted, Priority: model.PriorityHigh,
			EstimatedMinutes: 45, DueDate: now.AddDate(0, 0, 5), RelatedExamID: dataStructures,
			CompletedAt: &yesterday,
		},
		{
			Title: "Graph Algorithms Practice", Subject: "Computer Science",
			Difficulty: model.DifficultyHard, Status: model.TaskStatusPending, Priority: model.PriorityUrgent,
			EstimatedMinutes: 75, DueDate: now.AddDate(0, 0, 5), RelatedExamID: dataStructures,
		},
		{
			Title: "Electromagnetism Problem Set", Subject: "Physics",
			Difficulty: model.DifficultyHard, Status: model.TaskStatusPending, Priority: model.PriorityMedium,
			EstimatedMinutes: 90, DueDate: now.AddDate(0, 0, 18), RelatedExamID: physics,
		},
		{
			Title: "Series Convergence Review", Subject: "Mathematics",
			Difficulty: model.DifficultyMedium, Status: model.TaskStatusPending, Priority: model.PriorityLow,
			EstimatedMinutes: 45, DueDate: now.AddDate(0, 0, 12), RelatedExamID: calculus,
		},
	}
	for _, task := range tasks {
		task.ID = "task_" + uuid.New().String()
		task.CreatedAt = now
		task.UpdatedAt = now
		if err := st.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("seed task %s: %w", task.Title, err)
		}
	}

	// Weekly availability: mornings and afternoons spread over the week.
	grid := []struct{ day, start, end int }{
		{1, 9, 12}, {1, 14, 17},
		{2, 10, 13}, {2, 15, 18},
		{3, 9, 12}, {3, 14, 16},
		{4, 11, 14}, {4, 16, 19},
		{5, 9, 11}, {5, 13, 16},
		{6, 10, 14},
		{0, 14, 18},
	}
	for _, g := range grid {
		slot := &model.RecurringSlot{
			ID:        "slot_" + uuid.New().String(),
			DayOfWeek: g.day,
			StartHour: g.start,
			EndHour:   g.end,
			Available: true,
			CreatedAt: now,
		}
		if err := st.CreateSlot(ctx, slot); err != nil {
			return fmt.Errorf("seed slot: %w", err)
		}
	}

	return nil
}
