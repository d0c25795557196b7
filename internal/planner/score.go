package planner

import (
	"math"
	"sort"
	"time"

	"github.com/me/studyplan/pkg/model"
)

// Scoring weights. A task's score is the weighted sum of urgency, difficulty,
// priority, and status terms plus an exam-proximity bonus.
var (
	difficultyWeights = map[model.TaskDifficulty]float64{
		model.DifficultyEasy:   1,
		model.DifficultyMedium: 1.5,
		model.DifficultyHard:   2,
	}

	priorityWeights = map[model.TaskPriority]float64{
		model.PriorityLow:    1,
		model.PriorityMedium: 2,
		model.PriorityHigh:   3,
		model.PriorityUrgent: 5,
	}

	statusWeights = map[model.TaskStatus]float64{
		model.TaskStatusPending:    1,
		model.TaskStatusInProgress: 1.2,
		model.TaskStatusCompleted:  0,
		model.TaskStatusOverdue:    2,
	}
)

// Score computes the scheduling priority of a task. Completed tasks score
// exactly 0 and are never scheduled. The function is pure: given the same
// task, exams, and reference time it always returns the same score.
func Score(task *model.StudyTask, exams []*model.Exam, now time.Time) float64 {
	if task.Status == model.TaskStatusCompleted {
		return 0
	}

	daysUntilDue := daysUntil(task.DueDate, now)

	var examBonus float64
	if task.RelatedExamID != "" {
		// A dangling exam reference earns no bonus but is not an error.
		for _, exam := range exams {
			if exam.ID == task.RelatedExamID {
				daysUntilExam := daysUntil(exam.Date, now)
				examBonus = math.Max(0, float64(30-daysUntilExam)*float64(exam.Weight)/10)
				break
			}
		}
	}

	// Overdue or due today is maximal urgency; otherwise urgency decays
	// linearly and reaches 0 at 25 days out.
	urgency := 100.0
	if daysUntilDue > 0 {
		urgency = math.Max(0, 50-2*float64(daysUntilDue))
	}

	return urgency +
		difficultyWeights[task.Difficulty]*10 +
		priorityWeights[task.Priority]*15 +
		statusWeights[task.Status]*10 +
		examBonus
}

// daysUntil returns the number of whole days from now until t, rounded up
// and floored at zero.
func daysUntil(t, now time.Time) int {
	days := int(math.Ceil(t.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// scoredTask pairs a task with its computed score for ranking.
type scoredTask struct {
	task  *model.StudyTask
	score float64
}

// rankTasks scores every task and orders them by descending score. The sort
// is stable so tasks with equal scores keep their input order, which keeps
// allocation deterministic.
func rankTasks(tasks []*model.StudyTask, exams []*model.Exam, now time.Time) []scoredTask {
	ranked := make([]scoredTask, 0, len(tasks))
	for _, task := range tasks {
		ranked = append(ranked, scoredTask{task: task, score: Score(task, exams, now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}
