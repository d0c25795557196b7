package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/studyplan/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Task CRUD ---

func (s *SQLiteStore) CreateTask(ctx context.Context, task *model.StudyTask) error {
	s.logger.Debug("sql", "op", "insert", "table", "tasks", "id", task.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, subject, difficulty, status, priority, estimated_minutes, due_date, related_exam_id, notes, created_at, updated_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Subject, string(task.Difficulty), string(task.Status), string(task.Priority),
		task.EstimatedMinutes, task.DueDate.Format(time.RFC3339Nano), task.RelatedExamID, task.Notes,
		task.CreatedAt.Format(time.RFC3339Nano), task.UpdatedAt.Format(time.RFC3339Nano),
		formatOptionalTime(task.CompletedAt),
	)
	return err
}

func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*model.StudyTask, error) {
	s.logger.Debug("sql", "op", "select", "table", "tasks", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, subject, difficulty, status, priority, estimated_minutes, due_date, related_exam_id, notes, created_at, updated_at, completed_at
		 FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *SQLiteStore) ListTasks(ctx context.Context, opts model.ListOptions) ([]*model.StudyTask, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "tasks", "status", opts.Status)
	opts.Clamp()

	where := ""
	args := []any{}
	if opts.Status != "" {
		where = " WHERE status = ?"
		args = append(args, opts.Status)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, subject, difficulty, status, priority, estimated_minutes, due_date, related_exam_id, notes, created_at, updated_at, completed_at
		 FROM tasks`+where+` ORDER BY due_date ASC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tasks []*model.StudyTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}
	return tasks, total, rows.Err()
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, task *model.StudyTask) error {
	s.logger.Debug("sql", "op", "update", "table", "tasks", "id", task.ID)

	_, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, subject = ?, difficulty = ?, status = ?, priority = ?, estimated_minutes = ?, due_date = ?, related_exam_id = ?, notes = ?, updated_at = ?, completed_at = ?
		 WHERE id = ?`,
		task.Title, task.Subject, string(task.Difficulty), string(task.Status), string(task.Priority),
		task.EstimatedMinutes, task.DueDate.Format(time.RFC3339Nano), task.RelatedExamID, task.Notes,
		task.UpdatedAt.Format(time.RFC3339Nano), formatOptionalTime(task.CompletedAt), task.ID,
	)
	return err
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "tasks", "id", id)
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) ListDueTasks(ctx context.Context, cutoff time.Time) ([]*model.StudyTask, error) {
	s.logger.Debug("sql", "op", "list_due", "table", "tasks", "cutoff", cutoff)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, subject, difficulty, status, priority, estimated_minutes, due_date, related_exam_id, notes, created_at, updated_at, completed_at
		 FROM tasks WHERE due_date < ? AND status IN (?, ?)`,
		cutoff.Format(time.RFC3339Nano), string(model.TaskStatusPending), string(model.TaskStatusInProgress))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.StudyTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// --- Exam CRUD ---

func (s *SQLiteStore) CreateExam(ctx context.Context, exam *model.Exam) error {
	s.logger.Debug("sql", "op", "insert", "table", "exams", "id", exam.ID)

	topicsJSON, err := json.Marshal(exam.Topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO exams (id, title, subject, date, weight, topics, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exam.ID, exam.Title, exam.Subject, exam.Date.Format(time.RFC3339Nano), exam.Weight,
		string(topicsJSON), exam.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) GetExam(ctx context.Context, id string) (*model.Exam, error) {
	s.logger.Debug("sql", "op", "select", "table", "exams", "id", id)

	var exam model.Exam
	var topicsJSON, date, createdAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, subject, date, weight, topics, created_at FROM exams WHERE id = ?`, id,
	).Scan(&exam.ID, &exam.Title, &exam.Subject, &date, &exam.Weight, &topicsJSON, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(topicsJSON), &exam.Topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics: %w", err)
	}
	exam.Date, _ = time.Parse(time.RFC3339Nano, date)
	exam.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return &exam, nil
}

func (s *SQLiteStore) ListExams(ctx context.Context) ([]*model.Exam, error) {
	s.logger.Debug("sql", "op", "list", "table", "exams")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, subject, date, weight, topics, created_at FROM exams ORDER BY date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []*model.Exam
	for rows.Next() {
		var exam model.Exam
		var topicsJSON, date, createdAt string
		if err := rows.Scan(&exam.ID, &exam.Title, &exam.Subject, &date, &exam.Weight, &topicsJSON, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(topicsJSON), &exam.Topics); err != nil {
			return nil, fmt.Errorf("unmarshal topics: %w", err)
		}
		exam.Date, _ = time.Parse(time.RFC3339Nano, date)
		exam.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		exams = append(exams, &exam)
	}
	return exams, rows.Err()
}

func (s *SQLiteStore) DeleteExam(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "exams", "id", id)
	_, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id)
	return err
}

// --- Slot CRUD ---

func (s *SQLiteStore) CreateSlot(ctx context.Context, slot *model.RecurringSlot) error {
	s.logger.Debug("sql", "op", "insert", "table", "slots", "id", slot.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (id, day_of_week, start_hour, end_hour, is_available, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		slot.ID, slot.DayOfWeek, slot.StartHour, slot.EndHour, boolToInt(slot.Available),
		slot.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) GetSlot(ctx context.Context, id string) (*model.RecurringSlot, error) {
	s.logger.Debug("sql", "op", "select", "table", "slots", "id", id)

	var slot model.RecurringSlot
	var available int
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, day_of_week, start_hour, end_hour, is_available, created_at FROM slots WHERE id = ?`, id,
	).Scan(&slot.ID, &slot.DayOfWeek, &slot.StartHour, &slot.EndHour, &available, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	slot.Available = available != 0
	slot.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &slot, nil
}

func (s *SQLiteStore) ListSlots(ctx context.Context) ([]*model.RecurringSlot, error) {
	s.logger.Debug("sql", "op", "list", "table", "slots")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, day_of_week, start_hour, end_hour, is_available, created_at
		 FROM slots ORDER BY day_of_week ASC, start_hour ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*model.RecurringSlot
	for rows.Next() {
		var slot model.RecurringSlot
		var available int
		var createdAt string
		if err := rows.Scan(&slot.ID, &slot.DayOfWeek, &slot.StartHour, &slot.EndHour, &available, &createdAt); err != nil {
			return nil, err
		}
		slot.Available = available != 0
		slot.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		slots = append(slots, &slot)
	}
	return slots, rows.Err()
}

func (s *SQLiteStore) UpdateSlot(ctx context.Context, slot *model.RecurringSlot) error {
	s.logger.Debug("sql", "op", "update", "table", "slots", "id", slot.ID)

	_, err := s.db.ExecContext(ctx,
		`UPDATE slots SET day_of_week = ?, start_hour = ?, end_hour = ?, is_available = ? WHERE id = ?`,
		slot.DayOfWeek, slot.StartHour, slot.EndHour, boolToInt(slot.Available), slot.ID,
	)
	return err
}

func (s *SQLiteStore) DeleteSlot(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "slots", "id", id)
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE id = ?`, id)
	return err
}

// --- Plan operations ---

func (s *SQLiteStore) SavePlan(ctx context.Context, plan *model.StudyPlan) error {
	s.logger.Debug("sql", "op", "insert", "table", "plans", "id", plan.ID)

	sessionsJSON, err := json.Marshal(plan.Sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO plans (id, generated_at, sessions, total_study_hours, tasks_included)
		 VALUES (?, ?, ?, ?, ?)`,
		plan.ID, plan.GeneratedAt.Format(time.RFC3339Nano), string(sessionsJSON),
		plan.TotalStudyHours, plan.TasksIncluded,
	)
	return err
}

func (s *SQLiteStore) GetPlan(ctx context.Context, id string) (*model.StudyPlan, error) {
	s.logger.Debug("sql", "op", "select", "table", "plans", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, generated_at, sessions, total_study_hours, tasks_included FROM plans WHERE id = ?`, id)
	plan, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return plan, err
}

func (s *SQLiteStore) LatestPlan(ctx context.Context) (*model.StudyPlan, error) {
	s.logger.Debug("sql", "op", "select_latest", "table", "plans")

	row := s.db.QueryRowContext(ctx,
		`SELECT id, generated_at, sessions, total_study_hours, tasks_included
		 FROM plans ORDER BY generated_at DESC LIMIT 1`)
	plan, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return plan, err
}

func (s *SQLiteStore) ListPlans(ctx context.Context, opts model.ListOptions) ([]*model.StudyPlan, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "plans")
	opts.Clamp()

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM plans").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count plans: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generated_at, sessions, total_study_hours, tasks_included
		 FROM plans ORDER BY generated_at DESC LIMIT ? OFFSET ?`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var plans []*model.StudyPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
	}
	return plans, total, rows.Err()
}

// --- Scan helpers ---

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*model.StudyTask, error) {
	var task model.StudyTask
	var difficulty, status, priority string
	var dueDate, createdAt, updatedAt string
	var completedAt sql.NullString

	err := row.Scan(&task.ID, &task.Title, &task.Subject, &difficulty, &status, &priority,
		&task.EstimatedMinutes, &dueDate, &task.RelatedExamID, &task.Notes,
		&createdAt, &updatedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	task.Difficulty = model.TaskDifficulty(difficulty)
	task.Status = model.TaskStatus(status)
	task.Priority = model.TaskPriority(priority)
	task.DueDate, _ = time.Parse(time.RFC3339Nano, dueDate)
	task.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	task.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, completedAt.String)
		task.CompletedAt = &t
	}
	return &task, nil
}

func scanPlan(row rowScanner) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	var generatedAt, sessionsJSON string

	err := row.Scan(&plan.ID, &generatedAt, &sessionsJSON, &plan.TotalStudyHours, &plan.TasksIncluded)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sessionsJSON), &plan.Sessions); err != nil {
		return nil, fmt.Errorf("unmarshal sessions: %w", err)
	}
	plan.GeneratedAt, _ = time.Parse(time.RFC3339Nano, generatedAt)
	return &plan, nil
}

func formatOptionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
