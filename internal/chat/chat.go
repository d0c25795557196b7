package chat

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/me/studyplan/internal/planner"
	"github.com/me/studyplan/internal/store"
	"github.com/me/studyplan/pkg/model"
)

// ActionType classifies what a chat reply did or suggests.
type ActionType string

const (
	ActionAddTask      ActionType = "add_task"
	ActionGeneratePlan ActionType = "generate_plan"
	ActionInfo         ActionType = "info"
)

// Reply is the assistant's answer to one message.
type Reply struct {
	Content    string           `json:"content"`
	ActionType ActionType       `json:"action_type"`
	Task       *model.StudyTask `json:"task,omitempty"`
	Plan       *model.StudyPlan `json:"plan,omitempty"`
}

// Assistant interprets free-text study commands by keyword and pattern
// matching. Unlike a passive chatbot it acts on recognized commands: "add
// task" creates the task and "generate plan" runs the planner.
type Assistant struct {
	store   store.Store
	planner *planner.Planner
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures optional Assistant dependencies.
type Option func(*Assistant)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		a.now = now
	}
}

// New creates an Assistant.
func New(st store.Store, p *planner.Planner, logger *slog.Logger, opts ...Option) *Assistant {
	a := &Assistant{
		store:   st,
		planner: p,
		logger:  logger.With("component", "chat"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var addTaskPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)add (?:a )?task[:\s]+(.+?)(?:\s+for\s+(\w+))?$`),
	regexp.MustCompile(`(?i)create (?:a )?task[:\s]+(.+?)(?:\s+for\s+(\w+))?$`),
	regexp.MustCompile(`(?i)new task[:\s]+(.+?)(?:\s+for\s+(\w+))?$`),
}

var greetings = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}

// Respond interprets one message and returns a reply. Unrecognized input
// falls back to a capabilities summary rather than an error.
func (a *Assistant) Respond(ctx context.Context, message string) (*Reply, error) {
	lower := strings.ToLower(message)
	a.logger.Debug("message received", "length", len(message))

	switch {
	case strings.Contains(lower, "help"):
		return a.help(), nil
	case strings.Contains(lower, "generate plan"),
		strings.Contains(lower, "create schedule"),
		strings.Contains(lower, "make schedule"):
		return a.generatePlan(ctx)
	case strings.Contains(lower, "study tip"),
		strings.Contains(lower, "advice"),
		strings.Contains(lower, "recommendation"):
		return a.studyTip(ctx)
	case strings.Contains(lower, "show task"),
		strings.Contains(lower, "my task"),
		strings.Contains(lower, "list task"):
		return a.taskSummary(ctx)
	case strings.Contains(lower, "exam"), strings.Contains(lower, "test"):
		return a.examSummary(ctx)
	case strings.Contains(lower, "add task"),
		strings.Contains(lower, "create task"),
		strings.Contains(lower, "new task"):
		return a.addTask(ctx, message)
	case strings.Contains(lower, "plan"), strings.Contains(lower, "schedule"):
		return a.planSummary(ctx)
	}

	for _, g := range greetings {
		if strings.Contains(lower, g) {
			return a.greet(), nil
		}
	}

	return &Reply{
		ActionType: ActionInfo,
		Content: "I'm not sure how to help with that, but I can:\n" +
			"- manage tasks: \"add task: ...\", \"show my tasks\"\n" +
			"- build schedules: \"generate plan\"\n" +
			"- share study tips: \"give me study tips\"\n" +
			"- list exams: \"show upcoming exams\"\n" +
			"Type \"help\" for details.",
	}, nil
}

func (a *Assistant) help() *Reply {
	return &Reply{
		ActionType: ActionInfo,
		Content: "Here's what I can help you with:\n\n" +
			"- \"Add task: [title] for [subject]\" - create a study task\n" +
			"- \"Generate plan\" - build an optimized study schedule\n" +
			"- \"Study tips\" - get a recommendation for one of your tasks\n" +
			"- \"Show my tasks\" - summarize your current tasks\n" +
			"- \"Upcoming exams\" - list scheduled exams\n\n" +
			"Plans prioritize by difficulty, deadlines, and exam proximity,\n" +
			"and sessions are capped at 2 hours.",
	}
}

func (a *Assistant) greet() *Reply {
	hour := a.now().Hour()
	greeting := "Good evening"
	switch {
	case hour < 12:
		greeting = "Good morning"
	case hour < 18:
		greeting = "Good afternoon"
	}
	return &Reply{
		ActionType: ActionInfo,
		Content: greeting + "! I can create study tasks, generate optimized " +
			"schedules, and share study tips. What would you like to work on?",
	}
}

// listAllTasks pages through the store so summaries and plan generation see
// every task rather than the first page only.
func (a *Assistant) listAllTasks(ctx context.Context) ([]*model.StudyTask, error) {
	var tasks []*model.StudyTask
	opts := model.ListOptions{Limit: 100}
	for {
		page, total, err := a.store.ListTasks(ctx, opts)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, page...)
		if len(page) == 0 || len(tasks) >= total {
			return tasks, nil
		}
		opts.Offset += len(page)
	}
}

func (a *Assistant) generatePlan(ctx context.Context) (*Reply, error) {
	tasks, err := a.listAllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	active := 0
	for _, task := range tasks {
		if task.IsActive() {
			active++
		}
	}
	if active == 0 {
		return &Reply{
			ActionType: ActionInfo,
			Content:    "You don't have any pending tasks to schedule. Add some study tasks first, then I can create an optimized plan for you.",
		}, nil
	}

	exams, err := a.store.ListExams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	slots, err := a.store.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	plan := a.planner.Generate(tasks, exams, slots)
	if err := a.store.SavePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	return &Reply{
		ActionType: ActionGeneratePlan,
		Plan:       plan,
		Content: fmt.Sprintf("Done! I scheduled %d tasks across %d sessions (%.1f hours of study time).",
			plan.TasksIncluded, len(plan.Sessions), plan.TotalStudyHours),
	}, nil
}

func (a *Assistant) studyTip(ctx context.Context) (*Reply, error) {
	tasks, err := a.listAllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var active []*model.StudyTask
	for _, task := range tasks {
		if task.IsActive() {
			active = append(active, task)
		}
	}
	if len(active) == 0 {
		return &Reply{
			ActionType: ActionInfo,
			Content: "General study tips:\n" +
				"1. Active recall: test yourself instead of just reading\n" +
				"2. Spaced repetition: review at increasing intervals\n" +
				"3. Pomodoro: 25 minutes of focus, 5-minute break\n" +
				"4. Sleep well: memory consolidation happens during sleep",
		}, nil
	}

	task := active[rand.Intn(len(active))]
	return &Reply{
		ActionType: ActionInfo,
		Task:       task,
		Content:    fmt.Sprintf("Study tip for %q:\n%s", task.Title, planner.StudyTip(task)),
	}, nil
}

func (a *Assistant) taskSummary(ctx context.Context) (*Reply, error) {
	tasks, err := a.listAllTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := a.now()
	counts := map[model.TaskStatus]int{}
	var urgent, pastDue []string
	for _, task := range tasks {
		counts[task.Status]++
		if !task.IsActive() {
			continue
		}
		if task.Priority == model.PriorityUrgent {
			urgent = append(urgent, task.Title)
		}
		if task.IsDue(now) {
			pastDue = append(pastDue, task.Title)
		}
	}

	content := fmt.Sprintf("Your task summary:\nTotal: %d\nPending: %d\nIn progress: %d\nCompleted: %d\nOverdue: %d",
		len(tasks), counts[model.TaskStatusPending], counts[model.TaskStatusInProgress],
		counts[model.TaskStatusCompleted], counts[model.TaskStatusOverdue])
	if len(urgent) > 0 {
		content += "\n\nUrgent tasks:\n- " + strings.Join(urgent, "\n- ")
	}
	if len(pastDue) > 0 {
		content += "\n\nPast due:\n- " + strings.Join(pastDue, "\n- ")
	}
	return &Reply{ActionType: ActionInfo, Content: content}, nil
}

func (a *Assistant) examSummary(ctx context.Context) (*Reply, error) {
	exams, err := a.store.ListExams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	if len(exams) == 0 {
		return &Reply{
			ActionType: ActionInfo,
			Content:    "You don't have any exams scheduled yet. Add exams so I can prioritize related study tasks.",
		}, nil
	}

	sort.Slice(exams, func(i, j int) bool { return exams[i].Date.Before(exams[j].Date) })

	now := a.now()
	var lines []string
	for _, exam := range exams {
		days := int(exam.Date.Sub(now).Hours() / 24)
		lines = append(lines, fmt.Sprintf("- %s (%s): %d days away, weight %d", exam.Title, exam.Subject, days, exam.Weight))
	}
	return &Reply{
		ActionType: ActionInfo,
		Content:    "Upcoming exams:\n" + strings.Join(lines, "\n") + "\n\nTasks linked to the nearest exams get scheduled first.",
	}, nil
}

func (a *Assistant) addTask(ctx context.Context, message string) (*Reply, error) {
	title, subject := parseTask(message)
	if title == "" {
		return &Reply{
			ActionType: ActionInfo,
			Content: "To add a task, say something like:\n" +
				"- \"Add task: Review Chapter 5 for Mathematics\"\n" +
				"- \"Create task: Practice problems\"",
		}, nil
	}

	now := a.now()
	task := &model.StudyTask{
		ID:               "task_" + uuid.New().String(),
		Title:            title,
		Subject:          subject,
		Difficulty:       model.DifficultyMedium,
		Status:           model.TaskStatusPending,
		Priority:         model.PriorityMedium,
		EstimatedMinutes: 60,
		DueDate:          now.AddDate(0, 0, 7),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := a.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	a.logger.Info("task created from chat", "task_id", task.ID, "title", task.Title)
	return &Reply{
		ActionType: ActionAddTask,
		Task:       task,
		Content:    fmt.Sprintf("Added %q for %s, due in 7 days. You can adjust difficulty, priority, and due date afterwards.", task.Title, task.Subject),
	}, nil
}

func (a *Assistant) planSummary(ctx context.Context) (*Reply, error) {
	plan, err := a.store.LatestPlan(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest plan: %w", err)
	}
	if plan == nil {
		return &Reply{
			ActionType: ActionInfo,
			Content:    "No study plan yet. Say \"generate plan\" and I'll build one from your tasks and availability.",
		}, nil
	}
	return &Reply{
		ActionType: ActionInfo,
		Plan:       plan,
		Content: fmt.Sprintf("Your current study plan:\n%d tasks scheduled\n%.1f hours of study time\n%d study sessions",
			plan.TasksIncluded, plan.TotalStudyHours, len(plan.Sessions)),
	}, nil
}

// parseTask extracts a title and subject from an add-task message. The
// subject defaults to "General" when the "for ..." clause is missing.
func parseTask(message string) (title, subject string) {
	for _, pattern := range addTaskPatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		title = strings.TrimSpace(m[1])
		subject = m[2]
		if subject == "" {
			subject = "General"
		}
		return title, subject
	}
	return "", ""
}
