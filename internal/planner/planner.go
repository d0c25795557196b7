package planner

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/me/studyplan/pkg/model"
)

// Planner turns tasks, exams, and weekly availability into a concrete
// session-by-session study plan. Each Generate call is an independent,
// synchronous computation; no state is carried between calls.
type Planner struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures optional Planner dependencies.
type Option func(*Planner)

// WithClock overrides the time source. Tests use this to pin the reference
// time, since scoring and slot search both depend on "now".
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// New creates a Planner.
func New(logger *slog.Logger, opts ...Option) *Planner {
	p := &Planner{
		logger: logger.With("component", "planner"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate runs the scoring, allocation, and assembly pipeline once and
// returns a brand-new plan. It never fails: impossible requests degrade to
// partial or empty plans rather than errors.
func (p *Planner) Generate(tasks []*model.StudyTask, exams []*model.Exam, slots []*model.RecurringSlot) *model.StudyPlan {
	now := p.now()

	ranked := rankTasks(tasks, exams, now)
	sessions := allocate(ranked, slots, now)
	plan := assemble(sessions, now)

	p.logger.Info("plan generated",
		"tasks_considered", len(tasks),
		"tasks_included", plan.TasksIncluded,
		"sessions", len(plan.Sessions),
		"total_hours", plan.TotalStudyHours,
	)
	return plan
}

// assemble orders sessions chronologically and computes plan statistics.
func assemble(sessions []*model.ScheduledSession, now time.Time) *model.StudyPlan {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		// Zero-padded HH:MM compares lexicographically in time order.
		return sessions[i].StartTime < sessions[j].StartTime
	})

	totalMinutes := 0
	distinct := make(map[string]bool)
	for _, s := range sessions {
		totalMinutes += s.DurationMinutes
		distinct[s.TaskID] = true
	}

	return &model.StudyPlan{
		ID:              "plan_" + uuid.New().String(),
		GeneratedAt:     now,
		Sessions:        sessions,
		TotalStudyHours: math.Round(float64(totalMinutes)/60*10) / 10,
		TasksIncluded:   len(distinct),
	}
}
