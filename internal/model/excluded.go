package model

import "time"

// ExcludedDate marks a calendar date as non-working, with an optional note.
// At most one entry exists per calendar date.
type ExcludedDate struct {
	Date    time.Time `json:"date"`
	Comment string    `json:"comment,omitempty"`
}

// Key returns the canonical date key (YYYY-MM-DD) for uniqueness checks
func (e ExcludedDate) Key() string {
	return e.Date.Format(time.DateOnly)
}
