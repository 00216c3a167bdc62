package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// AppData is the full durable application state: the countdown target,
// the excluded (non-working) dates, and the task list. It is the unit
// that round-trips through local storage and remote sync.
type AppData struct {
	TargetDate    *time.Time     `json:"targetDate,omitempty"`
	ExcludedDates []ExcludedDate `json:"excludedDates"`
	Tasks         []Task         `json:"tasks"`
}

// NewAppData returns empty defaults with non-nil slices
func NewAppData() AppData {
	return AppData{
		ExcludedDates: []ExcludedDate{},
		Tasks:         []Task{},
	}
}

// Clone returns a deep copy
func (d AppData) Clone() AppData {
	out := AppData{
		ExcludedDates: make([]ExcludedDate, len(d.ExcludedDates)),
		Tasks:         make([]Task, len(d.Tasks)),
	}
	if d.TargetDate != nil {
		t := *d.TargetDate
		out.TargetDate = &t
	}
	copy(out.ExcludedDates, d.ExcludedDates)
	for i, t := range d.Tasks {
		out.Tasks[i] = t
		if t.DueDate != nil {
			due := *t.DueDate
			out.Tasks[i].DueDate = &due
		}
	}
	return out
}

// IsExcluded reports whether the given calendar date has an exclusion entry
func (d AppData) IsExcluded(date time.Time) bool {
	for _, e := range d.ExcludedDates {
		if SameDate(e.Date, date) {
			return true
		}
	}
	return false
}

// ExcludedKeys returns the set of excluded date keys (YYYY-MM-DD)
func (d AppData) ExcludedKeys() map[string]bool {
	keys := make(map[string]bool, len(d.ExcludedDates))
	for _, e := range d.ExcludedDates {
		keys[e.Key()] = true
	}
	return keys
}

// ToggleExcluded adds the date if absent and removes it if present.
// The list stays sorted by date and holds at most one entry per date.
func (d *AppData) ToggleExcluded(date time.Time, comment string) {
	date = DateOnly(date)
	for i, e := range d.ExcludedDates {
		if SameDate(e.Date, date) {
			d.ExcludedDates = append(d.ExcludedDates[:i], d.ExcludedDates[i+1:]...)
			return
		}
	}
	d.ExcludedDates = append(d.ExcludedDates, ExcludedDate{Date: date, Comment: comment})
	sort.Slice(d.ExcludedDates, func(i, j int) bool {
		return d.ExcludedDates[i].Date.Before(d.ExcludedDates[j].Date)
	})
}

// SetExcludedComment updates the comment on an existing exclusion.
// The date key never changes; unknown dates are ignored.
func (d *AppData) SetExcludedComment(date time.Time, comment string) {
	for i, e := range d.ExcludedDates {
		if SameDate(e.Date, date) {
			d.ExcludedDates[i].Comment = comment
			return
		}
	}
}

// FindTask returns a pointer to the task with the given ID, or nil
func (d *AppData) FindTask(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// RemoveTask deletes the task with the given ID, reporting whether it existed
func (d *AppData) RemoveTask(id string) bool {
	for i, t := range d.Tasks {
		if t.ID == id {
			d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Marshal serializes to the wire format
func (d AppData) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// UnmarshalAppData parses a serialized document, applying the legacy-schema
// migration before decoding. Empty input yields empty defaults.
func UnmarshalAppData(data []byte) (AppData, error) {
	if len(data) == 0 {
		return NewAppData(), nil
	}

	migrated, err := MigrateAppData(data)
	if err != nil {
		return AppData{}, err
	}

	d := NewAppData()
	if err := json.Unmarshal(migrated, &d); err != nil {
		return AppData{}, fmt.Errorf("failed to parse app data: %w", err)
	}
	if d.ExcludedDates == nil {
		d.ExcludedDates = []ExcludedDate{}
	}
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	return d, nil
}
