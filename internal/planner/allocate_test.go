package planner

import (
	"testing"

	"github.com/me/studyplan/pkg/model"
)

// weekdaySlots returns one two-hour slot per weekday, Monday through Friday.
func weekdaySlots() []*model.RecurringSlot {
	slots := make([]*model.RecurringSlot, 0, 5)
	for day := 1; day <= 5; day++ {
		slots = append(slots, &model.RecurringSlot{
			ID:        "slot_" + string(rune('a'+day-1)),
			DayOfWeek: day,
			StartHour: 9,
			EndHour:   11,
			Available: true,
		})
	}
	return slots
}

func TestNextAvailableSkipsUnavailable(t *testing.T) {
	slots := []*model.RecurringSlot{
		{ID: "slot_off", DayOfWeek: 1, StartHour: 9, EndHour: 11, Available: false},
		{ID: "slot_on", DayOfWeek: 3, StartHour: 14, EndHour: 16, Available: true},
	}

	occ, ok := nextAvailable(refTime, slots, map[string]int{})
	if !ok {
		t.Fatal("expected an occurrence within the horizon")
	}
	if occ.slot.ID != "slot_on" {
		t.Errorf("occurrence slot = %s, want slot_on", occ.slot.ID)
	}
	// refTime is a Monday; the Wednesday slot lands two days later.
	if want := startOfDay(refTime).AddDate(0, 0, 2); !occ.date.Equal(want) {
		t.Errorf("occurrence date = %v, want %v", occ.date, want)
	}
	if occ.available != 120 {
		t.Errorf("available = %d, want 120", occ.available)
	}
}

func TestNextAvailableSkipsNearlyFullOccurrence(t *testing.T) {
	slots := weekdaySlots()
	used := map[string]int{
		// Monday occurrence has only 20 minutes left: below the 30-minute floor.
		occurrenceKey(startOfDay(refTime), "slot_a"): 100,
	}

	occ, ok := nextAvailable(refTime, slots, used)
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if occ.slot.ID != "slot_b" {
		t.Errorf("occurrence slot = %s, want slot_b (Tuesday)", occ.slot.ID)
	}
}

func TestNextAvailableHorizonExhausted(t *testing.T) {
	// No slots at all: the scan must stop after the 30-day horizon.
	if _, ok := nextAvailable(refTime, nil, map[string]int{}); ok {
		t.Error("expected no occurrence without any slots")
	}

	// An unavailable slot never qualifies either.
	slots := []*model.RecurringSlot{
		{ID: "slot_off", DayOfWeek: 1, StartHour: 9, EndHour: 11, Available: false},
	}
	if _, ok := nextAvailable(refTime, slots, map[string]int{}); ok {
		t.Error("expected no occurrence with only unavailable slots")
	}
}

func TestAllocateSessionStartOffsets(t *testing.T) {
	// Two tasks share the Monday occurrence; the second starts where the
	// first ended, minutes carrying into hours.
	first := baseTask()
	first.ID = "task_1"
	first.Priority = model.PriorityUrgent
	first.EstimatedMinutes = 90
	second := baseTask()
	second.ID = "task_2"
	second.EstimatedMinutes = 30

	ranked := rankTasks([]*model.StudyTask{first, second}, nil, refTime)
	sessions := allocate(ranked, weekdaySlots(), refTime)

	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	if sessions[0].StartTime != "09:00" || sessions[0].EndTime != "10:30" {
		t.Errorf("first session %s-%s, want 09:00-10:30", sessions[0].StartTime, sessions[0].EndTime)
	}
	if sessions[1].StartTime != "10:30" || sessions[1].EndTime != "11:00" {
		t.Errorf("second session %s-%s, want 10:30-11:00", sessions[1].StartTime, sessions[1].EndTime)
	}
	if !sessions[0].Date.Equal(sessions[1].Date) {
		t.Error("both sessions should land in the Monday occurrence")
	}
}

func TestAllocateSkipsZeroScore(t *testing.T) {
	done := baseTask()
	done.Status = model.TaskStatusCompleted

	ranked := rankTasks([]*model.StudyTask{done}, nil, refTime)
	if sessions := allocate(ranked, weekdaySlots(), refTime); len(sessions) != 0 {
		t.Errorf("completed task produced %d sessions, want 0", len(sessions))
	}
}

func TestAllocateNoOverAllocation(t *testing.T) {
	// Many tasks competing for limited weekly capacity: no concrete
	// occurrence may exceed its window.
	var tasks []*model.StudyTask
	for i := 0; i < 12; i++ {
		task := baseTask()
		task.ID = "task_" + string(rune('a'+i))
		task.EstimatedMinutes = 200
		tasks = append(tasks, task)
	}

	slots := weekdaySlots()
	ranked := rankTasks(tasks, nil, refTime)
	sessions := allocate(ranked, slots, refTime)

	perOccurrence := make(map[string]int)
	for _, s := range sessions {
		if s.DurationMinutes <= 0 || s.DurationMinutes > maxSessionMinutes {
			t.Errorf("session duration %d outside (0, %d]", s.DurationMinutes, maxSessionMinutes)
		}
		// One slot per weekday, so the date identifies the occurrence.
		perOccurrence[s.Date.Format("2006-01-02")] += s.DurationMinutes
	}
	for date, minutes := range perOccurrence {
		if minutes > 120 {
			t.Errorf("occurrence %s overallocated: %d minutes in a 120-minute window", date, minutes)
		}
	}

	perTask := make(map[string]int)
	for _, s := range sessions {
		perTask[s.TaskID] += s.DurationMinutes
	}
	for id, minutes := range perTask {
		if minutes > 200 {
			t.Errorf("task %s scheduled %d minutes, estimate is 200", id, minutes)
		}
	}
}

func TestClockTime(t *testing.T) {
	cases := []struct {
		hour, offset int
		want         string
	}{
		{9, 0, "09:00"},
		{9, 30, "09:30"},
		{9, 90, "10:30"},
		{14, 125, "16:05"},
	}
	for _, tc := range cases {
		if got := clockTime(tc.hour, tc.offset); got != tc.want {
			t.Errorf("clockTime(%d, %d) = %s, want %s", tc.hour, tc.offset, got, tc.want)
		}
	}
}
