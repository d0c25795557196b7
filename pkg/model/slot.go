package model

import "time"

// RecurringSlot is a weekly-repeating availability window. It names a weekday
// and an hour range, not a calendar date; the planner expands it into concrete
// occurrences while searching for capacity.
type RecurringSlot struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"` // 0 = Sunday ... 6 = Saturday
	StartHour int    `json:"start_hour"`  // 0-23
	EndHour   int    `json:"end_hour"`    // exclusive, same day
	Available bool   `json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
}

// TotalMinutes returns the window length of one occurrence of this slot.
func (s *RecurringSlot) TotalMinutes() int {
	return (s.EndHour - s.StartHour) * 60
}

// Matches returns true if the slot is usable on the given weekday.
func (s *RecurringSlot) Matches(day time.Weekday) bool {
	return s.Available && s.DayOfWeek == int(day)
}
