package planner

import (
	"time"

	"github.com/me/studyplan/pkg/model"
)

const (
	// horizonDays bounds the forward search for free capacity.
	horizonDays = 30

	// minBlockMinutes is the smallest remaining window worth placing a
	// session into.
	minBlockMinutes = 30

	// maxSessionMinutes caps the length of a single session.
	maxSessionMinutes = 120

	// maxSessionsPerTask bounds how far one task may fragment within a
	// single plan.
	maxSessionsPerTask = 5
)

// occurrence is a concrete calendar-day instance of a recurring slot that
// still has capacity free.
type occurrence struct {
	date      time.Time
	slot      *model.RecurringSlot
	available int // minutes still free
}

// occurrenceKey identifies one (day, slot) occurrence in the used-minutes
// arena shared across an allocation run.
func occurrenceKey(date time.Time, slotID string) string {
	return date.Format("2006-01-02") + "/" + slotID
}

// nextAvailable scans forward day by day from base, for up to horizonDays,
// and returns the first occurrence of an available slot with at least
// minBlockMinutes free. Slots are probed in their list order within a day.
func nextAvailable(base time.Time, slots []*model.RecurringSlot, used map[string]int) (occurrence, bool) {
	day := startOfDay(base)
	for i := 0; i < horizonDays; i++ {
		for _, slot := range slots {
			if !slot.Matches(day.Weekday()) {
				continue
			}
			free := slot.TotalMinutes() - used[occurrenceKey(day, slot.ID)]
			if free >= minBlockMinutes {
				return occurrence{date: day, slot: slot, available: free}, true
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return occurrence{}, false
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
