package model

// TaskDifficulty grades how demanding a task is.
type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "easy"
	DifficultyMedium TaskDifficulty = "medium"
	DifficultyHard   TaskDifficulty = "hard"
)

// String returns the string representation of the difficulty.
func (d TaskDifficulty) String() string {
	return string(d)
}

// Valid returns true if d is a known difficulty.
func (d TaskDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// TaskStatus represents the lifecycle state of a StudyTask.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// Valid returns true if s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue:
		return true
	}
	return false
}

// TaskPriority is the caller-assigned importance of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// String returns the string representation of the priority.
func (p TaskPriority) String() string {
	return string(p)
}

// Valid returns true if p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
