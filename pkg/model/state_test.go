package model

import (
	"testing"
	"time"
)

func TestTaskStatusValid(t *testing.T) {
	valid := []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOverdue}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if TaskStatus("done").Valid() {
		t.Error("status 'done' should be invalid")
	}
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range []TaskDifficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !d.Valid() {
			t.Errorf("difficulty %q should be valid", d)
		}
	}
	if TaskDifficulty("brutal").Valid() {
		t.Error("difficulty 'brutal' should be invalid")
	}
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !p.Valid() {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if TaskPriority("critical").Valid() {
		t.Error("priority 'critical' should be invalid")
	}
}

func TestTaskIsActive(t *testing.T) {
	task := &StudyTask{Status: TaskStatusCompleted}
	if task.IsActive() {
		t.Error("completed task should not be active")
	}
	for _, s := range []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusOverdue} {
		task.Status = s
		if !task.IsActive() {
			t.Errorf("task with status %q should be active", s)
		}
	}
}

func TestSlotTotalMinutes(t *testing.T) {
	slot := &RecurringSlot{DayOfWeek: 1, StartHour: 9, EndHour: 12, Available: true}
	if got := slot.TotalMinutes(); got != 180 {
		t.Errorf("TotalMinutes = %d, want 180", got)
	}
	if !slot.Matches(time.Monday) {
		t.Error("slot should match Monday")
	}
	if slot.Matches(time.Tuesday) {
		t.Error("slot should not match Tuesday")
	}
	slot.Available = false
	if slot.Matches(time.Monday) {
		t.Error("unavailable slot should not match")
	}
}
