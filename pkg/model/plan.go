package model

import "time"

// ScheduledSession is one contiguous block of study time for one task,
// placed into a concrete occurrence of a recurring slot. Sessions are
// created by the planner and never mutated afterwards.
type ScheduledSession struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`

	// Task is the scheduled task, hydrated for presentation. Only TaskID is
	// authoritative; Task may be nil when a plan is loaded from storage and
	// the task has since been deleted.
	Task *StudyTask `json:"task,omitempty"`

	Date            time.Time `json:"date"`       // concrete calendar day
	StartTime       string    `json:"start_time"` // "HH:MM", 24-hour
	EndTime         string    `json:"end_time"`   // "HH:MM", 24-hour
	DurationMinutes int       `json:"duration_minutes"`
}

// StudyPlan is the result of one plan generation: a chronologically ordered
// list of sessions plus aggregate statistics. A regeneration produces a brand
// new plan; plans are never patched in place.
type StudyPlan struct {
	ID              string              `json:"id"`
	GeneratedAt     time.Time           `json:"generated_at"`
	Sessions        []*ScheduledSession `json:"sessions"`
	TotalStudyHours float64             `json:"total_study_hours"`
	TasksIncluded   int                 `json:"tasks_included"`
}
