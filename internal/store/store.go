package store

import (
	"context"
	"time"

	"github.com/me/studyplan/pkg/model"
)

// Store defines the persistence layer for studyplan entities.
type Store interface {
	// Task CRUD
	CreateTask(ctx context.Context, task *model.StudyTask) error
	GetTask(ctx context.Context, id string) (*model.StudyTask, error)
	ListTasks(ctx context.Context, opts model.ListOptions) ([]*model.StudyTask, int, error)
	UpdateTask(ctx context.Context, task *model.StudyTask) error
	DeleteTask(ctx context.Context, id string) error

	// ListDueTasks returns active tasks whose due date lies before cutoff.
	// Used by the overdue sweeper.
	ListDueTasks(ctx context.Context, cutoff time.Time) ([]*model.StudyTask, error)

	// Exam CRUD
	CreateExam(ctx context.Context, exam *model.Exam) error
	GetExam(ctx context.Context, id string) (*model.Exam, error)
	ListExams(ctx context.Context) ([]*model.Exam, error)
	DeleteExam(ctx context.Context, id string) error

	// Recurring slot CRUD
	CreateSlot(ctx context.Context, slot *model.RecurringSlot) error
	GetSlot(ctx context.Context, id string) (*model.RecurringSlot, error)
	ListSlots(ctx context.Context) ([]*model.RecurringSlot, error)
	UpdateSlot(ctx context.Context, slot *model.RecurringSlot) error
	DeleteSlot(ctx context.Context, id string) error

	// Plan operations. Plans are immutable once saved.
	SavePlan(ctx context.Context, plan *model.StudyPlan) error
	GetPlan(ctx context.Context, id string) (*model.StudyPlan, error)
	LatestPlan(ctx context.Context) (*model.StudyPlan, error)
	ListPlans(ctx context.Context, opts model.ListOptions) ([]*model.StudyPlan, int, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
