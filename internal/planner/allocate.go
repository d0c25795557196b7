package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/me/studyplan/pkg/model"
)

// allocate walks the ranked tasks in order and greedily places sessions into
// slot occurrences. Every task's search scans from the same base date, so
// higher-scored tasks claim early capacity and later tasks fill what remains
// or spill past the horizon unscheduled. Partial or zero placement is normal.
func allocate(ranked []scoredTask, slots []*model.RecurringSlot, base time.Time) []*model.ScheduledSession {
	var sessions []*model.ScheduledSession
	used := make(map[string]int) // occurrence key -> consumed minutes

	for _, entry := range ranked {
		if entry.score <= 0 {
			continue
		}

		remaining := entry.task.EstimatedMinutes
		count := 0

		for remaining > 0 && count < maxSessionsPerTask {
			occ, ok := nextAvailable(base, slots, used)
			if !ok {
				break
			}

			duration := remaining
			if occ.available < duration {
				duration = occ.available
			}
			if duration > maxSessionMinutes {
				duration = maxSessionMinutes
			}

			key := occurrenceKey(occ.date, occ.slot.ID)
			offset := used[key] // minutes already consumed in this occurrence

			sessions = append(sessions, &model.ScheduledSession{
				ID:              "sess_" + uuid.New().String(),
				TaskID:          entry.task.ID,
				Task:            entry.task,
				Date:            occ.date,
				StartTime:       clockTime(occ.slot.StartHour, offset),
				EndTime:         clockTime(occ.slot.StartHour, offset+duration),
				DurationMinutes: duration,
			})

			used[key] = offset + duration
			remaining -= duration
			count++
		}
	}

	return sessions
}

// clockTime renders a slot's start hour offset by some minutes as "HH:MM",
// carrying minute overflow into the hour.
func clockTime(startHour, offsetMinutes int) string {
	return fmt.Sprintf("%02d:%02d", startHour+offsetMinutes/60, offsetMinutes%60)
}
