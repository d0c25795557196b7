package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all studyplan tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		subject           TEXT NOT NULL DEFAULT '',
		difficulty        TEXT NOT NULL DEFAULT 'medium',
		status            TEXT NOT NULL DEFAULT 'pending',
		priority          TEXT NOT NULL DEFAULT 'medium',
		estimated_minutes INTEGER NOT NULL,
		due_date          TEXT NOT NULL,
		related_exam_id   TEXT NOT NULL DEFAULT '',
		notes             TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		completed_at      TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS exams (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		subject    TEXT NOT NULL DEFAULT '',
		date       TEXT NOT NULL,
		weight     INTEGER NOT NULL DEFAULT 0,
		topics     TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS slots (
		id           TEXT PRIMARY KEY,
		day_of_week  INTEGER NOT NULL,
		start_hour   INTEGER NOT NULL,
		end_hour     INTEGER NOT NULL,
		is_available INTEGER NOT NULL DEFAULT 1,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id                TEXT PRIMARY KEY,
		generated_at      TEXT NOT NULL,
		sessions          TEXT NOT NULL DEFAULT '[]',
		total_study_hours REAL NOT NULL DEFAULT 0,
		tasks_included    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_related_exam ON tasks(related_exam_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_date ON exams(date)`,
	`CREATE INDEX IF NOT EXISTS idx_slots_day ON slots(day_of_week)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_generated_at ON plans(generated_at)`,
}

// migrate applies the schema. Safe to run repeatedly.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
