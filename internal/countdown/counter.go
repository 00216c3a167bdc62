// Package countdown computes calendar-day and working-day counts to a
// target date. All functions are pure and work at date-only precision.
package countdown

import (
	"time"

	"github.com/existflow/daymark/internal/model"
)

// CalendarDaysRemaining returns the inclusive day count from today through
// target. A nil target or a target before today yields 0, never a negative.
func CalendarDaysRemaining(target *time.Time, today time.Time) int {
	if target == nil {
		return 0
	}
	from := model.DateOnly(today)
	to := model.DateOnly(*target)
	if to.Before(from) {
		return 0
	}
	// Diff in UTC so DST transitions cannot shave a day
	fromUTC := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours()/24) + 1
}

// WorkingDaysRemaining counts the days from today through target that are
// neither weekends nor in the excluded set. Keys in excluded are YYYY-MM-DD.
func WorkingDaysRemaining(target *time.Time, today time.Time, excluded map[string]bool) int {
	if target == nil {
		return 0
	}
	from := model.DateOnly(today)
	to := model.DateOnly(*target)
	if to.Before(from) {
		return 0
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if excluded[d.Format(time.DateOnly)] {
			continue
		}
		count++
	}
	return count
}

// Counts holds both countdown metrics for a single evaluation
type Counts struct {
	CalendarDays int
	WorkingDays  int
}

// Remaining evaluates both metrics against the app state in one call
func Remaining(data model.AppData, today time.Time) Counts {
	return Counts{
		CalendarDays: CalendarDaysRemaining(data.TargetDate, today),
		WorkingDays:  WorkingDaysRemaining(data.TargetDate, today, data.ExcludedKeys()),
	}
}
