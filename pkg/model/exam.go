package model

import "time"

// Exam is an upcoming examination. Tasks linked to an exam gain scheduling
// priority as the exam date approaches.
type Exam struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Subject string    `json:"subject"`
	Date    time.Time `json:"date"`

	// Weight is the exam's relative importance on a 0-100 scale
	// (e.g. "worth 40% of the final grade" -> 40).
	Weight int `json:"weight"`

	Topics    []string  `json:"topics,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
