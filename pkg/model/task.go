package model

import (
	"time"
)

// StudyTask is a single unit of study work to be scheduled.
// Tasks are owned by the task-management layer; the planner only reads them.
type StudyTask struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Subject          string         `json:"subject"`
	Difficulty       TaskDifficulty `json:"difficulty"`
	Status           TaskStatus     `json:"status"`
	Priority         TaskPriority   `json:"priority"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	DueDate          time.Time      `json:"due_date"`

	// RelatedExamID links the task to an exam for proximity scoring.
	// A dangling reference is not an error; it just earns no bonus.
	RelatedExamID string `json:"related_exam_id,omitempty"`

	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsActive returns true if the task still needs study time.
func (t *StudyTask) IsActive() bool {
	return t.Status != TaskStatusCompleted
}

// IsDue returns true if the task's due date has passed as of now.
func (t *StudyTask) IsDue(now time.Time) bool {
	return t.DueDate.Before(now)
}
