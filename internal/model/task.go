package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task represents a single todo item
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewTask creates a new task with a generated ID
func NewTask(text string) Task {
	now := time.Now()
	return Task{
		ID:        uuid.New().String(),
		Text:      strings.TrimSpace(text),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsValid reports whether the task can be stored
func (t *Task) IsValid() bool {
	return t.ID != "" && strings.TrimSpace(t.Text) != ""
}

// IsOverdue returns true if the task is past its due date
func (t *Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return DateOnly(*t.DueDate).Before(DateOnly(today))
}

// DateOnly truncates a time to midnight in its own location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two times fall on the same calendar date
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
