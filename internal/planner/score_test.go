package planner

import (
	"testing"
	"time"

	"github.com/me/studyplan/pkg/model"
)

// refTime is Monday, March 3 2025, 08:00 UTC. All scoring and allocation
// tests pin "now" to this instant for reproducibility.
var refTime = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

func baseTask() *model.StudyTask {
	return &model.StudyTask{
		ID:               "task_base",
		Title:            "Review notes",
		Subject:          "Mathematics",
		Difficulty:       model.DifficultyMedium,
		Status:           model.TaskStatusPending,
		Priority:         model.PriorityMedium,
		EstimatedMinutes: 60,
		DueDate:          refTime.AddDate(0, 0, 10),
	}
}

func TestScoreCompletedIsZero(t *testing.T) {
	task := baseTask()
	task.Status = model.TaskStatusCompleted
	if got := Score(task, nil, refTime); got != 0 {
		t.Errorf("Score(completed) = %v, want 0", got)
	}
}

func TestScoreTerms(t *testing.T) {
	// Due in 10 days: urgency = 50 - 2*10 = 30.
	// medium difficulty: 1.5*10 = 15; medium priority: 2*15 = 30;
	// pending status: 1*10 = 10. Total 85.
	task := baseTask()
	if got := Score(task, nil, refTime); got != 85 {
		t.Errorf("Score = %v, want 85", got)
	}
}

func TestScoreOverdueUrgency(t *testing.T) {
	task := baseTask()
	task.DueDate = refTime.AddDate(0, 0, -2)
	// Urgency pegged at 100 when overdue or due today.
	if got := Score(task, nil, refTime); got != 155 {
		t.Errorf("Score(overdue due date) = %v, want 155", got)
	}

	task.DueDate = refTime
	if got := Score(task, nil, refTime); got != 155 {
		t.Errorf("Score(due now) = %v, want 155", got)
	}
}

func TestScoreUrgencyFloorsAtZero(t *testing.T) {
	task := baseTask()
	task.DueDate = refTime.AddDate(0, 0, 40)
	// 40 days out: urgency would be negative, floored at 0. 15+30+10 = 55.
	if got := Score(task, nil, refTime); got != 55 {
		t.Errorf("Score(far due date) = %v, want 55", got)
	}
}

func TestScoreDaysUntilRoundsUp(t *testing.T) {
	task := baseTask()
	// 2.5 days out rounds up to 3 days: urgency = 50 - 6 = 44.
	task.DueDate = refTime.Add(60 * time.Hour)
	if got := Score(task, nil, refTime); got != 99 {
		t.Errorf("Score(2.5 days out) = %v, want 99", got)
	}
}

func TestScoreExamProximityBonus(t *testing.T) {
	exam := &model.Exam{
		ID:      "exam_1",
		Title:   "Calculus Midterm",
		Subject: "Mathematics",
		Date:    refTime.AddDate(0, 0, 5),
		Weight:  40,
	}

	task := baseTask()
	task.RelatedExamID = exam.ID

	// Bonus = (30-5) * 40/10 = 100 on top of the base 85.
	if got := Score(task, []*model.Exam{exam}, refTime); got != 185 {
		t.Errorf("Score(with exam) = %v, want 185", got)
	}
}

func TestScoreExamFarAwayNoBonus(t *testing.T) {
	exam := &model.Exam{ID: "exam_1", Date: refTime.AddDate(0, 0, 45), Weight: 40}
	task := baseTask()
	task.RelatedExamID = exam.ID

	if got := Score(task, []*model.Exam{exam}, refTime); got != 85 {
		t.Errorf("Score(exam 45 days out) = %v, want 85 (no bonus)", got)
	}
}

func TestScoreDanglingExamReference(t *testing.T) {
	task := baseTask()
	task.RelatedExamID = "exam_deleted"
	// Missing exam: bonus silently 0, reference untouched.
	if got := Score(task, []*model.Exam{{ID: "exam_other", Date: refTime, Weight: 50}}, refTime); got != 85 {
		t.Errorf("Score(dangling exam ref) = %v, want 85", got)
	}
	if task.RelatedExamID != "exam_deleted" {
		t.Error("scoring must not mutate the task")
	}
}

func TestScorePriorityMonotonic(t *testing.T) {
	low := baseTask()
	low.Priority = model.PriorityLow
	urgent := baseTask()
	urgent.Priority = model.PriorityUrgent

	if Score(urgent, nil, refTime) <= Score(low, nil, refTime) {
		t.Errorf("urgent priority must outscore low: urgent=%v low=%v",
			Score(urgent, nil, refTime), Score(low, nil, refTime))
	}
}

func TestRankTasksStableOnTies(t *testing.T) {
	a := baseTask()
	a.ID = "task_a"
	b := baseTask()
	b.ID = "task_b"
	c := baseTask()
	c.ID = "task_c"
	c.Priority = model.PriorityUrgent

	ranked := rankTasks([]*model.StudyTask{a, b, c}, nil, refTime)
	if ranked[0].task.ID != "task_c" {
		t.Errorf("highest scored task first, got %s", ranked[0].task.ID)
	}
	// a and b tie; input order must survive the sort.
	if ranked[1].task.ID != "task_a" || ranked[2].task.ID != "task_b" {
		t.Errorf("tie order not preserved: got %s, %s", ranked[1].task.ID, ranked[2].task.ID)
	}
}
